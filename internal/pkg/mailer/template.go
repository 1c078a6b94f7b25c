package mailer

import (
	"bytes"
	"html/template"
)

var contactTemplate = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px;">
	<h2 style="color: #f97316;">New Contact Form Submission</h2>
	<div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
		<p style="margin: 10px 0;"><strong>ID:</strong> {{.ID}}</p>
		<p style="margin: 10px 0;"><strong>Name:</strong> {{.Name}}</p>
		<p style="margin: 10px 0;"><strong>Email:</strong> {{.Email}}</p>
		<p style="margin: 10px 0;"><strong>Subject:</strong> {{.Subject}}</p>
	</div>
	<div style="background-color: #fff; padding: 15px; border-left: 4px solid #f97316; margin: 20px 0;">
		<h3 style="margin-top: 0;">Message:</h3>
		<p style="line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
	</div>
</div>
`))

// RenderHTML renders the operator notification. User input is escaped.
func RenderHTML(msg ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

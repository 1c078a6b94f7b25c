package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"sort"
	"time"

	"portfolio-be/pkg/contact"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

func main() {
	os.Exit(run(os.Args[1:], color.Output))
}

// run submits one contact message and returns the process exit code.
func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	fs.SetOutput(out)

	endpoint := fs.String("endpoint", "http://localhost:3000/api/contact", "contact endpoint URL")
	id := fs.String("id", "", "form id (random when empty)")
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email address")
	subject := fs.String("subject", "", "message subject")
	message := fs.String("message", "", "message body")
	timeout := fs.Duration("timeout", contact.DefaultTimeout, "request timeout, 0 disables")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *id == "" {
		*id = uuid.NewString()
	}

	client := contact.NewClient(*endpoint, contact.WithTimeout(*timeout))
	form := contact.NewForm(client,
		contact.WithFormID(*id),
		contact.WithStatusListener(func(s contact.Status) {
			if s.Kind == contact.StatusPending {
				cyan.Fprintln(out, "Sending...")
			}
		}),
	)

	form.SetField(contact.FieldName, *name)
	form.SetField(contact.FieldEmail, *email)
	form.SetField(contact.FieldSubject, *subject)
	form.SetField(contact.FieldMessage, *message)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	res, err := form.Submit(ctx)
	if err != nil {
		var verrs contact.ValidationErrors
		if errors.As(err, &verrs) {
			printFieldErrors(out, form.Errors())
		} else {
			red.Fprintf(out, "Failed: %v\n", err)
		}
		return 1
	}

	status := form.Status()
	if !res.OK() {
		red.Fprintln(out, status.Message)
		if res.ServerError != "" && res.Reason != contact.ReasonInvalidPayload {
			yellow.Fprintf(out, "server: %s (HTTP %d)\n", res.ServerError, res.StatusCode)
		}
		return 1
	}

	green.Fprintln(out, status.Message)
	return 0
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		red.Fprintf(out, "%s: %s\n", f, errs[f])
	}
}

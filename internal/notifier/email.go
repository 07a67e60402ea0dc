package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type EmailConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// EmailNotifier sends the match digest over SMTP with STARTTLS.
type EmailNotifier struct {
	cfg      EmailConfig
	template *template.Template
}

func NewEmailNotifier(cfg EmailConfig) (*EmailNotifier, error) {
	if cfg.Sender == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp sender credentials not configured")
	}
	return &EmailNotifier{cfg: cfg, template: digestTemplate}, nil
}

func (n *EmailNotifier) Deliver(ctx context.Context, recipient string, matches api.JobMatchList) error {
	body, err := renderDigest(n.template, matches)
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("🎯 %d Job Matches Found for You!", len(matches)))
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Sender),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	zap.S().Named("notifier").Infow("digest email sent", "recipient", recipient, "matches", len(matches))
	return nil
}

func renderDigest(tmpl *template.Template, matches api.JobMatchList) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, matches); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"titleCase": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"orDefault": func(s, def string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Job Matches</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; border-radius: 12px; margin-bottom: 30px;">
		<h1 style="color: white; margin: 0;">🎯 Your Job Matches Are Here!</h1>
		<p style="color: #e0e7ff; margin: 10px 0 0 0;">We found {{len .}} jobs matching your profile in the last 24 hours</p>
	</div>
{{range $i, $m := .}}
	<div style="background: #f9fafb; border-left: 4px solid #3b82f6; padding: 20px; margin-bottom: 20px; border-radius: 8px;">
		<h3 style="color: #1f2937; margin: 0 0 10px 0;">{{inc $i}}. {{$m.Title}}</h3>
		<p style="color: #6b7280; margin: 5px 0;"><strong>Company:</strong> {{$m.Company}}</p>
		<p style="color: #6b7280; margin: 5px 0;"><strong>Location:</strong> {{orDefault $m.Location "Not specified"}}</p>
		<p style="color: #6b7280; margin: 5px 0;"><strong>Source:</strong> {{titleCase $m.Source}}</p>
		<p style="color: #10b981; margin: 5px 0;"><strong>Match Score:</strong> {{printf "%.0f" $m.Score}}%</p>
		<p style="color: #4b5563; margin: 10px 0;"><strong>Why it matches:</strong> {{orDefault $m.Reason "Good fit based on your profile"}}</p>
		<a href="{{$m.Url}}" style="display: inline-block; background: #3b82f6; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; margin-top: 10px;">View Job</a>
	</div>
{{end}}
	<div style="background: #f3f4f6; padding: 20px; border-radius: 8px; margin-top: 30px; text-align: center;">
		<p style="color: #6b7280; margin: 0;">This email was sent by Job Matcher AI</p>
		<p style="color: #9ca3af; font-size: 14px; margin: 10px 0 0 0;">Automated job matching powered by AI</p>
	</div>
</body>
</html>
`))

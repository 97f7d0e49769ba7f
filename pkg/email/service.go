package email

import (
	"fmt"
	"log"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service handles email sending
type Service struct {
	fromEmail   string
	fromName    string
	baseURL     string
	sendGridKey string
	useSendGrid bool
}

// NewService creates a new email service
// If sendGridAPIKey is provided, emails will be sent via SendGrid
// Otherwise, emails will be logged to console (development mode)
func NewService(fromEmail, fromName, baseURL, sendGridAPIKey string) *Service {
	useSendGrid := sendGridAPIKey != ""
	if useSendGrid {
		log.Printf("✅ Email service initialized with SendGrid")
	} else {
		log.Printf("⚠️  Email service in console-only mode (set SENDGRID_API_KEY for production)")
	}

	return &Service{
		fromEmail:   fromEmail,
		fromName:    fromName,
		baseURL:     baseURL,
		sendGridKey: sendGridAPIKey,
		useSendGrid: useSendGrid,
	}
}

// SendLeadAssignmentEmail notifies a user that a lead was assigned to them
func (s *Service) SendLeadAssignmentEmail(toEmail, toName string, l *ent.Lead) error {
	leadName := l.FirstName + " " + l.LastName
	leadURL := fmt.Sprintf("%s/leads/%d", s.baseURL, l.ID)
	subject := fmt.Sprintf("New lead assigned: %s", leadName)

	company := l.Company
	if company == "" {
		company = "—"
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>A lead was assigned to you</h2>
			<p>Hi %s,</p>
			<p>The lead <strong>%s</strong> is now assigned to you.</p>
			<ul>
				<li>Email: %s</li>
				<li>Company: %s</li>
				<li>Status: %s</li>
			</ul>
			<p><a href="%s" style="background-color: #4CAF50; color: white; padding: 14px 20px; text-decoration: none; border-radius: 4px; display: inline-block;">Open Lead</a></p>
			<p>Thanks,<br>The SalesPipe Team</p>
		</body>
		</html>
	`, toName, leadName, l.Email, company, l.Status, leadURL)

	plainText := fmt.Sprintf(`
Hi %s,

The lead %s is now assigned to you.

Email: %s
Company: %s
Status: %s

Open it here: %s

Thanks,
The SalesPipe Team
	`, toName, leadName, l.Email, company, l.Status, leadURL)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plainText)
	}

	return s.logEmailToConsole(toEmail, toName, subject, leadURL)
}

// SendActivityReminderEmail reminds a user of an upcoming scheduled activity
func (s *Service) SendActivityReminderEmail(toEmail, toName string, a *ent.Activity, l *ent.Lead) error {
	leadName := l.FirstName + " " + l.LastName
	leadURL := fmt.Sprintf("%s/leads/%d", s.baseURL, l.ID)
	subject := fmt.Sprintf("Reminder: %s with %s", a.Title, leadName)

	scheduled := ""
	if a.ScheduledAt != nil {
		scheduled = a.ScheduledAt.Format("Mon, 02 Jan 2006 15:04")
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Upcoming activity</h2>
			<p>Hi %s,</p>
			<p>You have <strong>%s</strong> (%s) coming up with %s.</p>
			<p>Scheduled for: %s</p>
			<p><a href="%s" style="background-color: #4CAF50; color: white; padding: 14px 20px; text-decoration: none; border-radius: 4px; display: inline-block;">Open Lead</a></p>
			<p>Thanks,<br>The SalesPipe Team</p>
		</body>
		</html>
	`, toName, a.Title, a.Type, leadName, scheduled, leadURL)

	plainText := fmt.Sprintf(`
Hi %s,

You have %s (%s) coming up with %s.

Scheduled for: %s

Open the lead here: %s

Thanks,
The SalesPipe Team
	`, toName, a.Title, a.Type, leadName, scheduled, leadURL)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plainText)
	}

	return s.logEmailToConsole(toEmail, toName, subject, leadURL)
}

// SendWelcomeEmail greets a newly registered user
func (s *Service) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to SalesPipe!"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to SalesPipe!</h2>
			<p>Hi %s,</p>
			<p>Your account is ready. You can now manage your leads and activities.</p>
			<h3>Get Started:</h3>
			<ul>
				<li>Create your first lead</li>
				<li>Log calls, meetings and notes</li>
				<li>Track your pipeline on the dashboard</li>
			</ul>
			<p><a href="%s/dashboard" style="background-color: #4CAF50; color: white; padding: 14px 20px; text-decoration: none; border-radius: 4px; display: inline-block;">Go to Dashboard</a></p>
			<p>Thanks,<br>The SalesPipe Team</p>
		</body>
		</html>
	`, toName, s.baseURL)

	plainText := fmt.Sprintf(`
Hi %s,

Your account is ready. You can now manage your leads and activities.

Get Started:
- Create your first lead
- Log calls, meetings and notes
- Track your pipeline on the dashboard

Visit your dashboard: %s/dashboard

Thanks,
The SalesPipe Team
	`, toName, s.baseURL)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plainText)
	}

	log.Printf("📧 [EMAIL] Welcome email to: %s <%s>", toName, toEmail)
	return nil
}

// sendViaSendGrid sends an email using the SendGrid API
func (s *Service) sendViaSendGrid(toEmail, toName, subject, htmlBody, plainTextBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	message := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)

	client := sendgrid.NewSendClient(s.sendGridKey)
	response, err := client.Send(message)

	if err != nil {
		log.Printf("❌ SendGrid error: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("❌ SendGrid returned error status %d: %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}

	log.Printf("✅ Email sent successfully to %s (SendGrid status: %d)", toEmail, response.StatusCode)
	return nil
}

// logEmailToConsole logs email details to console (development mode)
func (s *Service) logEmailToConsole(toEmail, toName, subject, actionURL string) error {
	log.Printf("📧 [EMAIL] %s", subject)
	log.Printf("   To: %s <%s>", toName, toEmail)
	log.Printf("   From: %s <%s>", s.fromName, s.fromEmail)
	log.Printf("   Action URL: %s", actionURL)
	log.Printf("   ---")
	log.Printf("   ⚠️  Email NOT sent (development mode)")
	log.Printf("   Set SENDGRID_API_KEY environment variable to enable email sending")
	log.Printf("   ---")
	return nil
}

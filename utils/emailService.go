package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"lms/config"
)

// SendEmail delivers an HTML email through the configured SMTP relay.
// Sending is disabled (no-op) when EMAIL_SENDER is not configured.
func SendEmail(to []string, subject string, htmlBody string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" {
		return nil
	}

	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1D4ED8; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
			.content h2 { color: #1D4ED8; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1D4ED8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Learning Portal</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message from Learning Portal. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail mails login credentials to a newly approved student.
func SendWelcomeEmail(name, email, username, password, courseName, batchName string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your enrollment for <b>%s</b> has been approved. You have been placed in batch <b>%s</b>.</p>
		<div class="info-box">
			<p>Username: <b>%s</b><br/>Password: <b>%s</b></p>
		</div>
		<p>Please log in and change your password after your first session.</p>`,
		name, courseName, batchName, username, password)

	return SendEmail([]string{email}, "Your enrollment has been approved", getEmailTemplate("Enrollment Approved", body))
}

// SendCertificateIssuedEmail notifies a student that their certificate is ready.
func SendCertificateIssuedEmail(name, email, courseName, certificateNumber, downloadURL string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! Your certificate for <b>%s</b> has been issued.</p>
		<div class="info-box">
			<p>Certificate No: <b>%s</b><br/>Download: <a href="%s">%s</a></p>
		</div>`,
		name, courseName, certificateNumber, downloadURL, downloadURL)

	return SendEmail([]string{email}, "Your certificate is ready", getEmailTemplate("Certificate Issued", body))
}

// SendEnrollmentReceivedEmail alerts the admin inbox of a new enrollment request.
func SendEnrollmentReceivedEmail(name, email, phone, courseName string, filledDate time.Time) error {
	adminEmail := config.AppConfig.AdminEmail
	if adminEmail == "" {
		return nil
	}

	body := fmt.Sprintf(`
		<p>A new enrollment request is waiting for review.</p>
		<div class="info-box">
			<p>Name: <b>%s</b><br/>Email: %s<br/>Phone: %s<br/>Course: <b>%s</b><br/>Submitted: %s</p>
		</div>`,
		name, email, phone, courseName, filledDate.Format("02 Jan 2006 15:04"))

	return SendEmail([]string{adminEmail}, "New enrollment request", getEmailTemplate("New Enrollment Request", body))
}

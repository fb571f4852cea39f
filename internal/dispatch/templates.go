package dispatch

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Brand palette shared by the notification and courtesy templates.
const (
	colorNavy  = "#0f172a"
	colorBlue  = "#2563eb"
	colorGold  = "#d97706"
	colorSlate = "#64748b"
)

// renderInternalNotification builds the HTML table of submitted values
// sent to the internal recipient. Values are escaped; user input never
// becomes markup.
func renderInternalNotification(p Payload, now time.Time) string {
	var rows strings.Builder
	for _, e := range p.Entries {
		rows.WriteString(fmt.Sprintf(`<tr>
  <td style="padding: 12px 0; border-bottom: 1px solid #f1f5f9; color: %s; font-size: 13px; font-weight: 600; text-transform: uppercase; width: 35%%;">%s</td>
  <td style="padding: 12px 0; border-bottom: 1px solid #f1f5f9; color: #1e293b; font-size: 14px;">%s</td>
</tr>`, colorSlate, html.EscapeString(labelize(e.Key)), html.EscapeString(e.Value)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1e293b; background-color: #f1f5f9; padding: 40px 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; border: 1px solid #e2e8f0; overflow: hidden;">
      <div style="background-color: %s; padding: 20px; color: #ffffff;">
        <h2 style="margin: 0; font-size: 18px;">Internal Notification</h2>
        <p style="margin: 5px 0 0 0; opacity: 0.8; font-size: 14px;">Source: %s</p>
      </div>
      <div style="padding: 30px;">
        <h3 style="margin-top: 0; color: %s;">Form Details</h3>
        <table width="100%%" style="border-collapse: collapse;">%s</table>
        <div style="margin-top: 30px; padding: 15px; background-color: #f8fafc; border-radius: 6px; font-size: 12px; color: %s;">
          <strong>Submission Logged:</strong> %s
        </div>
      </div>
    </div>
  </body>
</html>`, colorNavy, html.EscapeString(p.FormName), colorNavy, rows.String(), colorSlate, now.Format("January 2, 2006 3:04 PM"))
}

// labelize turns a snake/camel field key into a spaced label, matching
// how submissions were displayed historically.
func labelize(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// courtesyTemplate picks the acknowledgment content by form purpose.
func courtesyTemplate(purpose Purpose, userName string) (subject, body string) {
	firstName := "there"
	if fields := strings.Fields(userName); len(fields) > 0 {
		firstName = fields[0]
	}

	var heroIcon, content string
	switch purpose {
	case PurposeBooking:
		subject = "Your Booking Request with HLCC"
		heroIcon = "📅"
		content = fmt.Sprintf(`
      <h1 style="color: %s; font-size: 24px; margin-bottom: 20px;">We've received your booking request!</h1>
      <p>Hello %s,</p>
      <p>Thank you for choosing HLCC. We're excited to connect with you and explore how we can support your leadership and culture journey.</p>
      <div style="background-color: white; border-left: 4px solid %s; padding: 20px; margin: 25px 0; border-radius: 4px;">
        <p style="margin: 0; font-weight: 600; color: %s;">What happens next?</p>
        <p style="margin: 10px 0 0 0; font-size: 14px; color: %s;">Our team is reviewing your preferences and availability. You can expect a follow-up email from one of our consultants within <strong>24 to 48 business hours</strong> to finalize the details.</p>
      </div>
      <p>In the meantime, feel free to explore our <a href="https://hlcc.africa/services" style="color: %s; text-decoration: none;">latest insights</a> on human-centered leadership.</p>`,
			colorNavy, html.EscapeString(firstName), colorGold, colorNavy, colorSlate, colorBlue)
	case PurposeApplication:
		subject = "Application Received - HLCC Network"
		heroIcon = "🤝"
		content = fmt.Sprintf(`
      <h1 style="color: %s; font-size: 24px; margin-bottom: 20px;">Thank you for applying!</h1>
      <p>Hello %s,</p>
      <p>We've received your application to join the HLCC network. Our team reviews every application carefully and will be in touch about next steps.</p>
      <div style="background-color: white; border-left: 4px solid %s; padding: 20px; margin: 25px 0; border-radius: 4px;">
        <p style="margin: 0; font-weight: 600; color: %s;">What happens next?</p>
        <p style="margin: 10px 0 0 0; font-size: 14px; color: %s;">Expect a response within <strong>5 business days</strong>. If your profile is a match we'll schedule an introductory conversation.</p>
      </div>`,
			colorNavy, html.EscapeString(firstName), colorGold, colorNavy, colorSlate)
	default:
		subject = "We received your message - HLCC"
		heroIcon = "✨"
		content = fmt.Sprintf(`
      <h1 style="color: %s; font-size: 24px; margin-bottom: 20px;">Thanks for reaching out!</h1>
      <p>Hello %s,</p>
      <p>We've received your message and a member of our team will get back to you within <strong>24 to 48 business hours</strong>.</p>`,
			colorNavy, html.EscapeString(firstName))
	}

	body = fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1e293b; background-color: %s; padding: 40px 20px; margin: 0;">
    <table width="100%%" cellpadding="0" cellspacing="0">
      <tr>
        <td align="center">
          <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden; border: 1px solid #e2e8f0;">
            <tr>
              <td style="padding: 40px; text-align: center; font-size: 40px;">%s</td>
            </tr>
            <tr>
              <td style="padding: 0 40px 40px 40px;">%s</td>
            </tr>
            <tr>
              <td style="background-color: %s; padding: 30px 40px; text-align: center;">
                <p style="margin: 0; color: #ffffff; font-size: 14px; font-weight: 600;">Human-Centered Leadership &amp; Culture Consulting</p>
                <p style="margin: 5px 0 0 0; color: #94a3b8; font-size: 12px;">Nairobi • Johannesburg • Kigali • Dar es Salaam</p>
              </td>
            </tr>
          </table>
          <p style="margin-top: 20px; color: #94a3b8; font-size: 12px;">© %d HLCC. All rights reserved.</p>
        </td>
      </tr>
    </table>
  </body>
</html>`, "#f8fafc", heroIcon, content, colorNavy, time.Now().Year())

	return subject, body
}

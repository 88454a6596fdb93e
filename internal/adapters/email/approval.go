package email

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// approvalTemplate is the markdown body of the approval notification.
const approvalTemplate = `# Welcome aboard, %s!

Your registration has been approved. You can now sign in as a **%s**.

Your coach will see you in the athlete lists, and assigned training
sessions will appear on your dashboard.

See you on the water.`

// BuildApprovalEmail composes the notification sent when an admin approves a
// registration. The body is authored as markdown and rendered to HTML.
// PRE: to, name and roleName are non-empty
// POST: Returns a SendRequest ready for a Sender
func BuildApprovalEmail(to, name, roleName string) (SendRequest, error) {
	md := fmt.Sprintf(approvalTemplate, name, roleName)

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return SendRequest{}, fmt.Errorf("failed to render approval email: %w", err)
	}

	return SendRequest{
		To:      []string{to},
		Subject: "Your account has been approved",
		HTML:    buf.String(),
	}, nil
}

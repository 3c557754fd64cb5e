package template

import (
	"fmt"
	"strings"
)

// RenewalNoticeSubject builds the deterministic subject line for a renewal
// notice.
func RenewalNoticeSubject(policyNumber string) string {
	return fmt.Sprintf("Renovación de póliza %s", policyNumber)
}

// RenewalNoticeTemplate builds the notice body. Case-file references that
// are URLs are appended as links instead of attachments.
func RenewalNoticeTemplate(clientName, policyNumber, coverageEnd string, links []string) string {
	var linkBlock string
	if len(links) > 0 {
		var b strings.Builder
		b.WriteString("<p>Documentación de la póliza:</p><ul>")
		for _, link := range links {
			b.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`, link, link))
		}
		b.WriteString("</ul>")
		linkBlock = b.String()
	}

	template := fmt.Sprintf(`
		<html>
        <body>
            <h2>Renovación de póliza</h2>
            <p>Estimado(a) %s,</p>
            <p>Le recordamos que su póliza <b>%s</b> tiene vigencia hasta el <b>%s</b>.</p>
            <p>Por favor contáctenos para gestionar la renovación.</p>
            %s
            <br>
            <p>Atentamente,<br>TAIICO</p>
        </body>
        </html>
		`, clientName, policyNumber, coverageEnd, linkBlock)
	return template
}

package report

import (
	"html/template"
	"strings"

	"github.com/wealthpeek/feescope/internal/models"
	"github.com/wealthpeek/feescope/internal/services/fees"
)

type reportData struct {
	Greeting            string
	Investments         []models.Investment
	ServicesReceived    []models.ServiceItem
	ServicesNotReceived []models.ServiceItem
	TotalServices       int
	MeetingLabel        string
	MeetingLabelLower   string
	TotalInvested       float64
	TotalFees           float64
	WeightedMER         float64
	ShowCTA             bool
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"cad": fees.FormatCAD,
	"pct": fees.FormatPercent,
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #f9fafb; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">

    <div style="background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 28px;">Your Fee Report</h1>
      <p style="color: #94a3b8; margin: 8px 0 0 0;">WealthPeek Investment Analysis</p>
    </div>

    <div style="padding: 32px;">
      <p style="color: #374151; font-size: 16px; line-height: 1.6;">{{.Greeting}}</p>
      <p style="color: #374151; font-size: 16px; line-height: 1.6;">
        Thank you for using WealthPeek. Here&#39;s a summary of your investment fees and services.
      </p>

      <div style="background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%); border-radius: 12px; padding: 24px; text-align: center; margin: 24px 0;">
        <p style="color: #94a3b8; margin: 0 0 8px 0; font-size: 14px;">Your Total Annual Fees</p>
        <p style="color: #22c55e; font-size: 42px; font-weight: bold; margin: 0;">{{cad .TotalFees}}</p>
        <p style="color: #6b7280; margin: 8px 0 0 0; font-size: 14px;">per year</p>
        <div style="margin-top: 16px; color: #94a3b8; font-size: 14px;">
          Total Invested: <strong style="color: white;">{{cad .TotalInvested}}</strong> &nbsp;|&nbsp;
          Average MER: <strong style="color: white;">{{pct .WeightedMER}}</strong>
        </div>
      </div>

      <h2 style="color: #111827; font-size: 18px; margin: 32px 0 16px 0;">Your Investments</h2>
      <table style="width: 100%; border-collapse: collapse; font-size: 14px;">
        <thead>
          <tr style="background: #f3f4f6;">
            <th style="padding: 12px; text-align: left; color: #6b7280; font-weight: 500;">Fund</th>
            <th style="padding: 12px; text-align: right; color: #6b7280; font-weight: 500;">Amount</th>
            <th style="padding: 12px; text-align: right; color: #6b7280; font-weight: 500;">MER</th>
            <th style="padding: 12px; text-align: right; color: #6b7280; font-weight: 500;">Annual Fee</th>
          </tr>
        </thead>
        <tbody>
{{range .Investments}}          <tr>
            <td style="padding: 12px; border-bottom: 1px solid #e5e5e5;">
              <strong style="color: #22c55e;">{{.FundCode}}</strong><br>
              <span style="color: #6b7280; font-size: 12px;">{{.FundName}}</span>
            </td>
            <td style="padding: 12px; border-bottom: 1px solid #e5e5e5; text-align: right;">{{cad .Amount}}</td>
            <td style="padding: 12px; border-bottom: 1px solid #e5e5e5; text-align: right;">{{pct .MER}}</td>
            <td style="padding: 12px; border-bottom: 1px solid #e5e5e5; text-align: right; font-weight: 600;">{{cad .AnnualFee}}</td>
          </tr>
{{end}}          <tr style="font-weight: 600; background: #f9fafb;">
            <td style="padding: 12px;">Total</td>
            <td style="padding: 12px; text-align: right;">{{cad .TotalInvested}}</td>
            <td style="padding: 12px; text-align: right;">{{pct .WeightedMER}}</td>
            <td style="padding: 12px; text-align: right; color: #22c55e;">{{cad .TotalFees}}</td>
          </tr>
        </tbody>
      </table>

      <div style="display: flex; gap: 24px; margin-top: 32px;">
        <div style="flex: 1;">
          <h3 style="color: #111827; font-size: 16px; margin: 0 0 12px 0;">&#10003; Services You Receive</h3>
          <ul style="list-style: none; padding: 0; margin: 0; font-size: 14px; color: #374151;">
{{if .ServicesReceived}}{{range .ServicesReceived}}            <li style="margin: 4px 0;">&#10003; {{.Name}}</li>
{{end}}{{else}}            <li style="color: #6b7280; font-style: italic;">No services selected</li>
{{end}}          </ul>
          <p style="margin-top: 12px; font-size: 13px; color: #6b7280;">
            &#128197; Advisor meetings: <strong>{{.MeetingLabel}}</strong>
          </p>
        </div>
        <div style="flex: 1;">
          <h3 style="color: #111827; font-size: 16px; margin: 0 0 12px 0;">&#10007; Services Not Received</h3>
          <ul style="list-style: none; padding: 0; margin: 0; font-size: 14px;">
{{if .ServicesNotReceived}}{{range .ServicesNotReceived}}            <li style="margin: 4px 0; color: #6b7280;">&#10007; {{.Name}}</li>
{{end}}{{else}}            <li style="color: #22c55e;">You&#39;re receiving all services!</li>
{{end}}          </ul>
        </div>
      </div>

      <div style="background: #f0fdf4; border-radius: 8px; padding: 20px; margin-top: 32px; text-align: center;">
        <h3 style="color: #166534; margin: 0 0 12px 0;">Summary</h3>
        <p style="color: #374151; margin: 0; font-size: 14px; line-height: 1.8;">
          You are paying <strong style="color: #22c55e;">{{cad .TotalFees}}</strong> per year in fees<br>
          You are receiving <strong>{{len .ServicesReceived}}</strong> of {{.TotalServices}} possible services<br>
          You meet with your advisor <strong>{{.MeetingLabelLower}}</strong>
        </p>
      </div>
{{if .ShowCTA}}
      <div style="background: linear-gradient(135deg, #22c55e 0%, #16a34a 100%); border-radius: 8px; padding: 24px; margin-top: 24px; text-align: center;">
        <p style="color: white; font-size: 18px; font-weight: 600; margin: 0 0 8px 0;">There may be a better way.</p>
        <p style="color: rgba(255,255,255,0.9); font-size: 14px; margin: 0;">Would you like to learn more? Reply to this email to schedule a consultation.</p>
      </div>
{{end}}
    </div>

    <div style="background: #f3f4f6; padding: 20px; text-align: center;">
      <p style="color: #6b7280; font-size: 12px; margin: 0;">
        This report was generated by WealthPeek. The information provided is for educational purposes only.
      </p>
    </div>
  </div>
</body>
</html>
`))

// renderReport produces the HTML body for a fee report. The consultation
// call-to-action is included only when annual fees exceed ctaThreshold.
func renderReport(req *models.ReportEmailRequest, ctaThreshold float64) (string, error) {
	greeting := "Hello,"
	if req.FirstName != "" {
		greeting = "Hi " + req.FirstName + ","
	}

	var received, notReceived []models.ServiceItem
	for _, svc := range req.Services {
		if svc.Checked {
			received = append(received, svc)
		} else {
			notReceived = append(notReceived, svc)
		}
	}

	data := reportData{
		Greeting:            greeting,
		Investments:         req.Investments,
		ServicesReceived:    received,
		ServicesNotReceived: notReceived,
		TotalServices:       len(req.Services),
		MeetingLabel:        req.MeetingLabel,
		MeetingLabelLower:   strings.ToLower(req.MeetingLabel),
		TotalInvested:       req.TotalInvested,
		TotalFees:           req.TotalFees,
		WeightedMER:         req.WeightedMER,
		ShowCTA:             req.TotalFees > ctaThreshold,
	}

	var buf strings.Builder
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

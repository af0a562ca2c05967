package reports

import (
	"html/template"
	"io"

	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// reportTemplate renders the statistics overview as a standalone printable
// page. It is self-contained (inline styles, no scripts) so it can be saved
// or printed to PDF as-is.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>BetterUS Activity Report</title>
<style>
  body { font-family: Georgia, serif; margin: 2rem auto; max-width: 52rem; color: #222; }
  h1 { border-bottom: 2px solid #222; padding-bottom: .3rem; }
  h2 { margin-top: 2rem; }
  table { border-collapse: collapse; width: 100%; margin-top: .5rem; }
  th, td { border: 1px solid #999; padding: .35rem .6rem; text-align: left; }
  th { background: #f0f0f0; }
  .meta { color: #666; font-size: .9rem; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>BetterUS Activity Report</h1>
<p class="meta">Trailing {{.RangeDays}} days &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>

<h2>Accounts</h2>
<table>
<tr><th>Total</th><th>New in range</th></tr>
<tr><td>{{.Users.Total}}</td><td>{{.Users.NewInRange}}</td></tr>
</table>
<table>
<tr><th>Role</th><th>Count</th></tr>
{{range $role, $count := .Users.ByRole}}<tr><td>{{$role}}</td><td>{{$count}}</td></tr>
{{end}}</table>
<table>
<tr><th>Status</th><th>Count</th></tr>
{{range $status, $count := .Users.ByStatus}}<tr><td>{{$status}}</td><td>{{$count}}</td></tr>
{{end}}</table>

<h2>Campaigns</h2>
<table>
<tr><th>Total</th><th>Ongoing</th><th>Completed</th><th>Registered volunteers</th></tr>
<tr><td>{{.Campaigns.Total}}</td><td>{{.Campaigns.Ongoing}}</td><td>{{.Campaigns.Completed}}</td><td>{{.Campaigns.Volunteers}}</td></tr>
</table>

<h2>Help Requests</h2>
<table>
<tr><th>Status</th><th>Count</th></tr>
{{range $status, $count := .HelpRequests.ByStatus}}<tr><td>{{$status}}</td><td>{{$count}}</td></tr>
{{end}}<tr><th>Total</th><th>{{.HelpRequests.Total}}</th></tr>
</table>

<h2>Campaign Registrations</h2>
<table>
<tr><th>In range</th><th>Attended</th></tr>
<tr><td>{{.Registrations.InRange}}</td><td>{{.Registrations.Attended}}</td></tr>
</table>

<h2>Most Active Districts</h2>
<table>
<tr><th>District</th><th>Campaigns</th><th>Help requests</th></tr>
{{range .TopDistricts}}<tr><td>{{.District}}</td><td>{{.Campaigns}}</td><td>{{.Requests}}</td></tr>
{{end}}</table>

<h2>Messaging</h2>
<table>
<tr><th>Total messages</th><th>In range</th></tr>
<tr><td>{{.Messages.Total}}</td><td>{{.Messages.InRange}}</td></tr>
</table>
</body>
</html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// WriteOverview renders the printable report for the overview.
func WriteOverview(w io.Writer, overview *dtos.StatisticsOverview) error {
	return tmpl.Execute(w, overview)
}

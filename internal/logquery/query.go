// Package logquery implements the query-and-render cycle of the log query
// widget: it turns a QueryState into a /logs request, fetches the JSON log
// list and renders it into a Table.
package logquery

import (
	"github.com/valyala/fasthttp"

	"github.com/watchfire-io/tasklog/internal/daterange"
	"github.com/watchfire-io/tasklog/internal/models"
)

// Query parameter names understood by the /logs endpoint.
const (
	ParamProjectID = "project_id"
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
	ParamDate      = "date"
)

// LogsPath is the endpoint path, relative to the server base URL.
const LogsPath = "/logs"

// EncodeQuery builds the query string for q. Parameters keep a fixed order:
// project_id first, then the date parameters of the active mode.
//
//	range:  project_id=<id>&startDate=<YYYY-MM-DD>&endDate=<YYYY-MM-DD>
//	single: project_id=<id>&date=<YYYY-MM-DD>
//	none:   project_id=<id>
func EncodeQuery(q models.QueryState) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Add(ParamProjectID, q.ProjectID)

	switch q.Mode {
	case models.ModeSingle:
		if q.Date != nil {
			args.Add(ParamDate, daterange.FormatISO(*q.Date))
		}
	default:
		if q.Range != nil {
			args.Add(ParamStartDate, daterange.FormatISO(q.Range.Start))
			args.Add(ParamEndDate, daterange.FormatISO(q.Range.End))
		}
	}

	return args.String()
}

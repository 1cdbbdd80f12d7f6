package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
)

// MessageOutput receives the full text of an HTTP exchange, keyed by request id.
type MessageOutput interface {
	Write(id string, contents string)
}

type instrumentResty struct {
	tel    API
	output MessageOutput
	ids    *atomic.Uint64
}

// InstrumentResty reports every request made by the client, retries
// included. `output` can be nil in which case the exchanges are not dumped.
func InstrumentResty(client *resty.Client, tel API, output MessageOutput) {
	i := instrumentResty{tel: tel, output: output, ids: &atomic.Uint64{}}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id    uint64
	start time.Time
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	id := i.ids.Add(1)
	req.SetContext(context.WithValue(req.Context(), reqCtxKey, reqCtx{
		id:    id,
		start: time.Now(),
	}))
	i.tel.ReportDebug(
		report_resty_request,
		slog.Uint64("request", id),
		slog.String("url", req.URL),
		slog.Int("attempt", req.Attempt),
	)
	return nil
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	rc, ok := res.Request.Context().Value(reqCtxKey).(reqCtx)
	if !ok {
		return nil
	}

	i.tel.ReportDebug(
		report_resty_response,
		slog.Uint64("request", rc.id),
		slog.Int("status", res.StatusCode()),
		slog.Int("bytes", len(res.Body())),
		slog.Duration("took", time.Since(rc.start)),
	)
	if i.output != nil {
		i.output.Write(strconv.FormatUint(rc.id, 10), formatExchange(res))
	}
	return nil
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	var took time.Duration
	rc, ok := req.Context().Value(reqCtxKey).(reqCtx)
	if ok {
		took = time.Since(rc.start)
	}
	i.tel.ReportWarning(
		report_resty_response,
		err,
		slog.String("url", req.URL),
		slog.Int("attempt", req.Attempt),
		slog.Duration("took", took),
	)
}

func writeHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

// formatExchange renders a request and its response as text. Only GET
// requests are made so there is no request body to print.
func formatExchange(res *resty.Response) string {
	var out strings.Builder

	out.WriteString("---- REQUEST ----\n\n")
	fmt.Fprintf(&out, "%s %s (attempt %d)\n\n", res.Request.Method, res.Request.URL, res.Request.Attempt)
	if res.Request.RawRequest != nil {
		writeHeaders(&out, res.Request.RawRequest.Header)
	}

	out.WriteString("\n---- RESPONSE ----\n\n")
	fmt.Fprintf(&out, "%d %s\n\n", res.StatusCode(), res.Request.URL)
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	out.WriteString(res.String())

	return out.String()
}

package result

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resultctl/pkg/logging"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultBaseURL is the public result portal API
const DefaultBaseURL = "http://software.diu.edu.bd:8006"

const defaultTimeout = 15 * time.Second

// Source is anything that can answer the three result API calls
type Source interface {
	FetchStudentInfo(ctx context.Context, studentID string) (*StudentInfo, error)
	FetchTermList(ctx context.Context) ([]Term, error)
	FetchTermResult(ctx context.Context, studentID, semesterID string) ([]CourseResult, error)
}

// ClientOpts configures a Client. Zero values fall back to defaults.
type ClientOpts struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     log.Logger
}

// Client handles HTTP requests to the result API. Every call is a single
// attempt; failures come back as *FetchError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient creates a new API client
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		logger:     log.With(logging.OrNop(opts.Logger), "component", "client"),
	}
}

// BaseURL returns the API endpoint the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchStudentInfo retrieves the profile of a student
func (c *Client) FetchStudentInfo(ctx context.Context, studentID string) (*StudentInfo, error) {
	params := url.Values{}
	params.Set("studentId", studentID)

	var info *StudentInfo
	if err := c.getJSON(ctx, "student info", "/result/studentInfo", params, &info); err != nil {
		return nil, err
	}
	if info == nil {
		return nil, c.nullBody("student info")
	}
	return info, nil
}

// FetchTermList retrieves every semester known to the API
func (c *Client) FetchTermList(ctx context.Context) ([]Term, error) {
	var terms []Term
	if err := c.getJSON(ctx, "semester list", "/result/semesterList", nil, &terms); err != nil {
		return nil, err
	}
	// null decodes to a nil slice, [] to an empty one
	if terms == nil {
		return nil, c.nullBody("semester list")
	}
	return terms, nil
}

// nullBody reports a 2xx response whose body was JSON null
func (c *Client) nullBody(op string) error {
	err := &FetchError{Op: op, Kind: KindParse, StatusCode: http.StatusOK, Err: errors.New("response body is null")}
	level.Warn(c.logger).Log("msg", "empty response body", "op", op)
	return err
}

// FetchTermResult retrieves the graded courses of a student for one semester.
// An empty slice with a nil error means the term has no courses.
func (c *Client) FetchTermResult(ctx context.Context, studentID, semesterID string) ([]CourseResult, error) {
	params := url.Values{}
	params.Set("studentId", studentID)
	params.Set("semesterId", semesterID)
	// The portal requires the captcha field to be present even though it is not checked
	params.Set("grecaptcha", "")

	op := fmt.Sprintf("result for semester %s", semesterID)

	var courses []CourseResult
	if err := c.getJSON(ctx, op, "/result", params, &courses); err != nil {
		return nil, err
	}

	for _, course := range courses {
		if course.TotalCredit < 0 {
			err := &FetchError{
				Op:   op,
				Kind: KindParse,
				Err:  fmt.Errorf("course %s has negative credit %v", course.CustomCourseID, course.TotalCredit.Float()),
			}
			level.Warn(c.logger).Log("msg", "rejected result payload", "op", op, "err", err)
			return nil, err
		}
	}

	if courses == nil {
		courses = []CourseResult{}
	}
	return courses, nil
}

// getJSON performs a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Op: op, Kind: KindTransport, Err: err}
	}

	req.Header.Set("User-Agent", "resultctl/1.0")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		fetchErr := &FetchError{Op: op, Kind: KindTransport, Err: err}
		level.Warn(c.logger).Log("msg", "request failed", "op", op, "err", err)
		return fetchErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		level.Warn(c.logger).Log("msg", "unexpected status", "op", op, "status", resp.StatusCode)
		return &FetchError{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to read body", "op", op, "err", err)
		return &FetchError{Op: op, Kind: KindTransport, StatusCode: resp.StatusCode, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		level.Warn(c.logger).Log("msg", "failed to decode body", "op", op, "err", err)
		return &FetchError{Op: op, Kind: KindParse, StatusCode: resp.StatusCode, Err: err}
	}

	level.Debug(c.logger).Log("msg", "fetched", "op", op, "status", resp.StatusCode, "took", time.Since(start))
	return nil
}

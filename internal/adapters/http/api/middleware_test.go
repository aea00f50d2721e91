package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/dataatlas/internal/domain/account"
	"github.com/okian/dataatlas/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(502), ShouldEqual, "server_error")
		So(getErrorType(429), ShouldEqual, "rate_limit")
		So(getErrorType(413), ShouldEqual, "payload_too_large")
		So(getErrorType(405), ShouldEqual, "method_not_allowed")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorType(200), ShouldEqual, "unknown")

		So(getErrorSeverity(503), ShouldEqual, "high")
		So(getErrorSeverity(400), ShouldEqual, "medium")
		So(getErrorSeverity(204), ShouldEqual, "low")
	})
}

func TestKindErrors(t *testing.T) {
	Convey("Given wrapped kind errors", t, func() {
		cause := errors.New("unexpected EOF")
		err := WrapKind("api.parse_body", ErrMalformedBody, cause)

		Convey("Then both the kind and the cause should match", func() {
			So(errors.Is(err, ErrMalformedBody), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(errors.Is(err, ErrBodyTooLarge), ShouldBeFalse)
			So(err.Error(), ShouldEqual, "api.parse_body: malformed body: unexpected EOF")
		})

		Convey("Then NewKind should carry only the kind", func() {
			k := NewKind("api.dispatch", ErrInvalidAction)
			So(errors.Is(k, ErrInvalidAction), ShouldBeTrue)
			So(k.Error(), ShouldEqual, "api.dispatch: invalid action")
		})

		Convey("Then Wrap should keep nil as nil", func() {
			So(Wrap("op", nil), ShouldBeNil)
			So(errors.Is(Wrap("op", cause), cause), ShouldBeTrue)
		})
	})
}

func TestParseBody(t *testing.T) {
	Convey("Given ParseBody", t, func() {
		parse := func(body io.Reader, limit int64) (map[string]any, error) {
			r := httptest.NewRequest(http.MethodPost, "/user", body)
			return ParseBody(httptest.NewRecorder(), r, limit)
		}

		Convey("When the body is a JSON object", func() {
			got, err := parse(strings.NewReader(`{"action":"login","n":1,"nested":{"a":[true,null]}}`), 1024)
			So(err, ShouldBeNil)
			So(got["action"], ShouldEqual, "login")
			So(got["n"], ShouldEqual, float64(1))
			So(got["nested"], ShouldResemble, map[string]any{"a": []any{true, nil}})
		})

		Convey("When keys repeat", func() {
			got, err := parse(strings.NewReader(`{"action":"login","action":"register"}`), 1024)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got["action"], ShouldEqual, "register")
		})

		Convey("When the body is empty or whitespace", func() {
			for _, body := range []string{"", "   \n\t"} {
				got, err := parse(strings.NewReader(body), 1024)
				So(err, ShouldBeNil)
				So(got, ShouldNotBeNil)
				So(got, ShouldBeEmpty)
			}
		})

		Convey("When the body is not an object", func() {
			for _, body := range []string{"[]", "42", "null", "{"} {
				_, err := parse(strings.NewReader(body), 1024)
				So(errors.Is(err, ErrMalformedBody), ShouldBeTrue)
			}
		})

		Convey("When the body is over the limit", func() {
			_, err := parse(strings.NewReader(`{"action":"login"}`), 4)
			So(errors.Is(err, ErrBodyTooLarge), ShouldBeTrue)
		})

		Convey("When reading the body fails", func() {
			_, err := parse(failingReader{}, 1024)

			Convey("Then the cause should be kept without a body kind", func() {
				So(errors.Is(err, errRead), ShouldBeTrue)
				So(errors.Is(err, ErrMalformedBody), ShouldBeFalse)
				So(errors.Is(err, ErrBodyTooLarge), ShouldBeFalse)
			})

			Convey("Then the response should be a 500", func() {
				w := httptest.NewRecorder()
				writeBodyError(w, httptest.NewRequest(http.MethodPost, "/user", nil), logger.Nop(), err)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, http.StatusText(http.StatusInternalServerError))
			})
		})
	})
}

var errRead = errors.New("connection reset")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errRead }

// recordingLogger keeps warn entries for inspection.
type recordingLogger struct {
	warns  []string
	fields [][]logger.Field
}

func (l *recordingLogger) Info(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Error(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Debug(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Fatal(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Named(string) logger.Logger { return l }

func (l *recordingLogger) Warn(_ context.Context, msg string, fields ...logger.Field) {
	l.warns = append(l.warns, msg)
	l.fields = append(l.fields, fields)
}

func TestRequireMethod(t *testing.T) {
	Convey("Given a POST-only handler with a recording logger", t, func() {
		rec := &recordingLogger{}
		called := false
		h := RequirePOST(rec, func(http.ResponseWriter, *http.Request) { called = true })

		Convey("When a GET arrives", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/user", nil))

			Convey("Then it should be rejected and logged at warn", func() {
				So(called, ShouldBeFalse)
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
				So(rec.warns, ShouldResemble, []string{"method not allowed"})

				var logged error
				for _, f := range rec.fields[0] {
					if err, ok := f.Value.(error); ok {
						logged = err
					}
				}
				So(errors.Is(logged, ErrMethodNotAllowed), ShouldBeTrue)
			})
		})

		Convey("When a POST arrives", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodPost, "/user", nil))

			Convey("Then it should pass through without logging", func() {
				So(called, ShouldBeTrue)
				So(rec.warns, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a handler allowing several methods and a nil logger", t, func() {
		h := RequireMethod(nil, func(http.ResponseWriter, *http.Request) {}, http.MethodGet, http.MethodHead)

		Convey("Then the Allow header and message should list them", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodDelete, "/api-docs", nil))
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
			So(w.Body.String(), ShouldContainSubstring, "Only GET or HEAD allowed")
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		var seen string
		h := RequestID(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestIDFromContext(r.Context())
		})

		Convey("When the client sends no id", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodPost, "/user", nil))

			Convey("Then one should be generated and stored in the context", func() {
				So(seen, ShouldNotBeEmpty)
				So(w.Header().Get(RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("When the client id is too long", func() {
			r := httptest.NewRequest(http.MethodPost, "/user", nil)
			r.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
			h(httptest.NewRecorder(), r)

			Convey("Then it should be replaced", func() {
				So(len(seen), ShouldBeLessThanOrEqualTo, maxRequestIDLen)
			})
		})

		Convey("When the client id is well formed", func() {
			r := httptest.NewRequest(http.MethodPost, "/user", nil)
			r.Header.Set(RequestIDHeader, "trace-01.A_b:9")
			w := httptest.NewRecorder()
			h(w, r)

			Convey("Then it should be reused", func() {
				So(seen, ShouldEqual, "trace-01.A_b:9")
				So(w.Header().Get(RequestIDHeader), ShouldEqual, "trace-01.A_b:9")
			})
		})

		Convey("When the client id has characters outside the allowed set", func() {
			for _, id := range []string{"a b", "<script>", "id\"quoted", "caf\u00e9", "a/b"} {
				r := httptest.NewRequest(http.MethodPost, "/user", nil)
				r.Header.Set(RequestIDHeader, id)
				w := httptest.NewRecorder()
				h(w, r)

				So(seen, ShouldNotEqual, id)
				So(w.Header().Get(RequestIDHeader), ShouldEqual, seen)
			}
		})
	})
}

func TestDispatcher(t *testing.T) {
	Convey("Given a dispatcher with a nil logger", t, func() {
		d := NewPasswordDispatcher(account.NewStub(), nil)

		Convey("Then it should list its actions", func() {
			So(d.Actions(), ShouldHaveLength, 2)
			So(d.Actions(), ShouldContain, ActionForgotPassword)
			So(d.Actions(), ShouldContain, ActionResetPassword)
		})

		Convey("Then the empty action should be rejected", func() {
			status, body := d.Dispatch(context.Background(), "", nil)
			So(status, ShouldEqual, http.StatusBadRequest)
			So(body, ShouldResemble, map[string]string{"message: ": "Invalid action"})
		})
	})
}

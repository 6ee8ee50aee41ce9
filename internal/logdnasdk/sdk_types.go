package logdnasdk

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/imroc/req/v3"
	"github.com/logdna/logdna-cli/internal/version"
	"github.com/shirou/gopsutil/v4/host"
)

const (
	HeaderUserAgent = "User-Agent"
	HeaderRequestID = "X-Request-Id"
	HeaderDeviceID  = "X-Device-Id"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultRetryCount     = 2
)

// UserAgent is `logdna-cli/1.5.0 (linux; amd64; ubuntu/22.04)`. The platform
// part is resolved once and left out when the host can't be inspected.
var UserAgent = sync.OnceValue(func() string {
	detail := fmt.Sprintf("%s; %s", runtime.GOOS, runtime.GOARCH)
	if info, err := host.Info(); err == nil && info.Platform != "" {
		detail += "; " + info.Platform
		if info.PlatformVersion != "" {
			detail += "/" + info.PlatformVersion
		}
	}
	return fmt.Sprintf("%s (%s)", version.UserAgent(), detail)
})

// DeviceID is an app-scoped hash of the machine id, empty when unavailable.
var DeviceID = sync.OnceValue(func() string {
	id, err := machineid.ProtectedID(version.AppName)
	if err != nil {
		slog.Debug("device id unavailable", "error", err)
		return ""
	}
	return id
})

// commonHeaders are sent on every request and on the tail handshake.
func commonHeaders() http.Header {
	h := http.Header{}
	h.Set(HeaderUserAgent, UserAgent())
	if id := DeviceID(); id != "" {
		h.Set(HeaderDeviceID, id)
	}
	return h
}

// NewHTTPClient returns a req client with the CLI's common settings.
func NewHTTPClient() *req.Client {
	client := req.C().
		SetTimeout(defaultRequestTimeout).
		SetCommonRetryCount(defaultRetryCount).
		SetCommonRetryBackoffInterval(500*time.Millisecond, 2*time.Second).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	for key, values := range commonHeaders() {
		client.SetCommonHeader(key, values[0])
	}
	return client
}

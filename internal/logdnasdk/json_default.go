//go:build !sonic

package logdnasdk

import "github.com/goccy/go-json"

// for imroc/req and frame decoding
var jsonMarshal = json.Marshal
var jsonUnmarshal = json.Unmarshal

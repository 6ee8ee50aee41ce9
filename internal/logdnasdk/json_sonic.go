//go:build sonic

package logdnasdk

import "github.com/bytedance/sonic"

// for imroc/req and frame decoding
var jsonMarshal = sonic.Marshal
var jsonUnmarshal = sonic.Unmarshal

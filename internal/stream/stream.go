// Package stream accumulates a model's fragment stream into one buffer.
// It has no JSON awareness; payload extraction happens downstream.
package stream

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ripgtxgt/ton-audit-ai/internal/provider"
)

// Observer is invoked once per non-empty fragment, in arrival order.
// It exists for progress signaling only and must not affect correctness.
type Observer func(fragment string)

// Collect drains the stream, concatenating fragments in arrival order.
// A transport failure propagates to the caller without partial results.
// The buffer is local to this call; nothing survives between invocations.
func Collect(s provider.Stream, observe Observer) (string, error) {
	var buf strings.Builder

	for {
		fragment, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return buf.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("stream aborted: %w", err)
		}

		if fragment == "" {
			continue
		}

		buf.WriteString(fragment)
		if observe != nil {
			observe(fragment)
		}
	}
}

package main

import (
	"bytes"
	"encoding"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/stackie/internal/common"
	"github.com/rawbytedev/stackie/internal/logger"
	"github.com/rawbytedev/stackie/internal/sized"
)

func runStore(e *env, args []string) error {
	flagSet := newFlagSet("store")
	opts := bindBufferFlags(flagSet, e.cfg)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		return fmt.Errorf("%w: stackie store [flags] TEXT...", errUsage)
	}

	buf, mode, err := opts.buffer()
	if err != nil {
		return err
	}
	for _, arg := range flagSet.Args() {
		text, err := opts.text(arg)
		if err != nil {
			return err
		}
		if err := buf.Assign(mode, text); err != nil {
			return err
		}
		logTruncation(buf, mode, text)
		if _, err := buf.WriteTo(e.stdout); err != nil {
			return err
		}
		if _, err := io.WriteString(e.stdout, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// logTruncation reports, at debug level, input that did not fit.
func logTruncation(buf sized.Buffer, mode sized.Mode, text string) {
	want := len(text)
	if mode == sized.ModeCBytes {
		want = common.CStrLen([]byte(text))
	}
	if want <= buf.Cap() {
		return
	}
	logger.WithFields(logrus.Fields{
		"capacity": buf.Cap(),
		"mode":     mode,
		"input":    want,
		"kept":     buf.Len(),
	}).Debug("input truncated")
}

// Formats accepted by encode and decode. cbor and binary travel as hex.
var formats = []string{"text", "json", "yaml", "cbor", "binary"}

func checkFormat(format string) error {
	for _, f := range formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown format %q (one of %s)", errUsage, format, strings.Join(formats, ", "))
}

func runEncode(e *env, args []string) error {
	var format string

	flagSet := newFlagSet("encode")
	opts := bindBufferFlags(flagSet, e.cfg)
	flagSet.StringVarP(&format, "format", "f", "text", "one of "+strings.Join(formats, ", "))
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("%w: stackie encode [flags] TEXT", errUsage)
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	buf, mode, err := opts.buffer()
	if err != nil {
		return err
	}
	text, err := opts.text(flagSet.Arg(0))
	if err != nil {
		return err
	}
	if err := buf.Assign(mode, text); err != nil {
		return err
	}
	logTruncation(buf, mode, text)

	out, err := encode(buf, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	_, err = fmt.Fprintf(e.stdout, "%s\n", bytes.TrimRight(out, "\n"))
	return err
}

func encode(buf sized.Buffer, format string) ([]byte, error) {
	v := buf.Value()
	switch format {
	case "text":
		return v.(encoding.TextMarshaler).MarshalText()
	case "json":
		return json.Marshal(v)
	case "yaml":
		return yaml.Marshal(v)
	case "cbor":
		data, err := cbor.Marshal(v)
		if err != nil {
			return nil, err
		}
		return []byte(hex.EncodeToString(data)), nil
	case "binary":
		data, err := v.(encoding.BinaryMarshaler).MarshalBinary()
		if err != nil {
			return nil, err
		}
		return []byte(hex.EncodeToString(data)), nil
	}
	return nil, checkFormat(format)
}

func runDecode(e *env, args []string) error {
	var format string

	flagSet := newFlagSet("decode")
	opts := bindBufferFlags(flagSet, e.cfg)
	flagSet.StringVarP(&format, "format", "f", "text", "one of "+strings.Join(formats, ", "))
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 0 {
		return fmt.Errorf("%w: stackie decode [flags] < INPUT", errUsage)
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	buf, _, err := opts.buffer()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(e.stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := decode(buf, format, data); err != nil {
		return fmt.Errorf("decode %s: %w", format, err)
	}
	if _, err := buf.WriteTo(e.stdout); err != nil {
		return err
	}
	_, err = io.WriteString(e.stdout, "\n")
	return err
}

func decode(buf sized.Buffer, format string, data []byte) error {
	t := buf.Target()
	switch format {
	case "text":
		return t.(encoding.TextUnmarshaler).UnmarshalText(bytes.TrimSuffix(data, []byte("\n")))
	case "json":
		return json.Unmarshal(data, t)
	case "yaml":
		return yaml.Unmarshal(data, t)
	case "cbor", "binary":
		raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return err
		}
		if format == "cbor" {
			return cbor.Unmarshal(raw, t)
		}
		return t.(encoding.BinaryUnmarshaler).UnmarshalBinary(raw)
	}
	return checkFormat(format)
}

// profile holds the counters from one assignment loop.
type profile struct {
	Iterations int
	Elapsed    time.Duration
	Mallocs    uint64
	Bytes      uint64
}

func (p profile) nsPerOp() float64 {
	if p.Iterations == 0 {
		return 0
	}
	return float64(p.Elapsed.Nanoseconds()) / float64(p.Iterations)
}

func measure(buf sized.Buffer, mode sized.Mode, text string, iterations int) (profile, error) {
	var before, after runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := buf.Assign(mode, text); err != nil {
			return profile{}, err
		}
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	return profile{
		Iterations: iterations,
		Elapsed:    elapsed,
		Mallocs:    after.Mallocs - before.Mallocs,
		Bytes:      after.TotalAlloc - before.TotalAlloc,
	}, nil
}

func runProfile(e *env, args []string) error {
	var (
		iterations int
		out        string
	)

	flagSet := newFlagSet("profile")
	opts := bindBufferFlags(flagSet, e.cfg)
	flagSet.IntVarP(&iterations, "iterations", "n", 1_000_000, "assignments to run")
	flagSet.StringVarP(&out, "out", "o", "", "write a heap profile to this file")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 1 || iterations < 0 {
		return fmt.Errorf("%w: stackie profile [flags] [TEXT]", errUsage)
	}

	buf, mode, err := opts.buffer()
	if err != nil {
		return err
	}
	text := "hello world!"
	if flagSet.NArg() == 1 {
		if text, err = opts.text(flagSet.Arg(0)); err != nil {
			return err
		}
	}

	if out != "" {
		prev := runtime.MemProfileRate
		runtime.MemProfileRate = 1
		defer func() { runtime.MemProfileRate = prev }()
	}

	p, err := measure(buf, mode, text, iterations)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"capacity":   buf.Cap(),
		"mode":       mode,
		"iterations": p.Iterations,
	}).Debug("profile finished")

	fmt.Fprintf(e.stdout, "capacity=%d mode=%s iterations=%d\n", buf.Cap(), mode, p.Iterations)
	fmt.Fprintf(e.stdout, "elapsed=%s ns/op=%.1f mallocs=%d bytes=%d\n", p.Elapsed, p.nsPerOp(), p.Mallocs, p.Bytes)

	if out == "" {
		return nil
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}
	logger.Infof("heap profile written to %s", out)
	return nil
}

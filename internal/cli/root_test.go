package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logicossoftware/go-decima"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{decima.ErrCorruptContainer, 2},
		{&decima.RecordError{Offset: 12, Err: fmt.Errorf("%w: short", decima.ErrSizeMismatch)}, 3},
		{fmt.Errorf("resolve: %w", decima.ErrDanglingReference), 4},
		{decima.ErrMissingExternalFile, 5},
		{decima.ErrUnrecognizedAssertion, 6},
		{errors.New("other"), 1},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Errorf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestOptionsFlagsOverrideConfig(t *testing.T) {
	t.Cleanup(func() { configPath, rootDir, variantFlag = "", "", "" })
	configPath = ""
	rootDir = t.TempDir()
	variantFlag = "ds-pc"

	opts, log, err := options()
	if err != nil {
		t.Fatal(err)
	}
	defer log.Sync()
	s := decima.NewSession(opts...)
	if s.Variant() != decima.VariantDeathStrandingPC || s.RootDir() != rootDir {
		t.Fatalf("variant %v root %s", s.Variant(), s.RootDir())
	}

	variantFlag = "gamecube"
	if _, _, err := options(); err == nil {
		t.Fatal("expected variant error")
	}
}

type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestExitErrFlushesLogger(t *testing.T) {
	oldLogger, oldExit := logger, osExit
	t.Cleanup(func() { logger, osExit = oldLogger, oldExit })

	out := &syncCounter{}
	logger = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), out, zapcore.WarnLevel))
	code := -1
	osExit = func(c int) { code = c }

	logger.Warn("record not fully decoded")
	exitErr("load", fmt.Errorf("wrapped: %w", decima.ErrCorruptContainer))
	if out.syncs != 1 || code != 2 {
		t.Fatalf("syncs = %d, exit code = %d", out.syncs, code)
	}
	if !bytes.Contains(out.Bytes(), []byte("record not fully decoded")) {
		t.Fatalf("log output = %q", out.String())
	}
}

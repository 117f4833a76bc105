package main

import (
	"io"
	"os"
	"strings"
	"testing"
)

func sampleISA() string {
	return "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *230101*1253*^*00501*000000001*0*P*:~"
}

func sampleDocument() string {
	return sampleISA() +
		"GS*HP*SENDER*RECEIVER*20230101*1253*1*X*005010X221A1~" +
		"ST*835*0001~" +
		"BPR*I*100.00*C*ACH*CCP*01*999999999*DA*123456*1512345678**01*999999999*DA*654321*20230101~" +
		"TRN*1*TRACE1~" +
		"N1*PR*Acme Health Plan~" +
		"CLP*CLM001*1*100.00*100.00*0*12*PAYERCTRL1~" +
		"SE*6*0001~" +
		"GE*1*1~" +
		"IEA*1*000000001~"
}

func writeTempFile(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf strings.Builder
	io.Copy(&buf, r)
	return buf.String()
}

func TestRunWithNoArgs(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"edicheck"}
	if got := run(); got != exitError {
		t.Errorf("run() = %d, want exitError", got)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"edicheck", "bogus"}
	if got := run(); got != exitError {
		t.Errorf("run() = %d, want exitError", got)
	}
}

func TestRunParseJSON(t *testing.T) {
	path := writeTempFile(t, "edicheck-*.x12", sampleDocument())
	var code int
	out := captureStdout(t, func() { code = runParse([]string{path}) })
	if code != exitOK {
		t.Fatalf("runParse() = %d, want exitOK", code)
	}
	if !strings.Contains(out, "\"835\"") && !strings.Contains(out, "set_code") {
		t.Errorf("expected JSON output to mention the transaction, got: %s", out)
	}
}

func TestRunParseText(t *testing.T) {
	path := writeTempFile(t, "edicheck-*.x12", sampleDocument())
	var code int
	out := captureStdout(t, func() { code = runParse([]string{"--format", "text", path}) })
	if code != exitOK {
		t.Fatalf("runParse() = %d, want exitOK", code)
	}
	if !strings.Contains(out, "835 0001") {
		t.Errorf("expected text output to list the 835 transaction, got: %s", out)
	}
}

func TestRunParseMissingFile(t *testing.T) {
	if got := runParse([]string{"/nonexistent/path.x12"}); got != exitError {
		t.Errorf("runParse() = %d, want exitError", got)
	}
}

func TestRunParseNoISAHeader(t *testing.T) {
	path := writeTempFile(t, "edicheck-*.x12", "GS*HP*SENDER*RECEIVER*20230101*1253*1*X*005010X221A1~")
	if got := runParse([]string{path}); got != exitError {
		t.Errorf("runParse() = %d, want exitError", got)
	}
}

func TestRunValidateOK(t *testing.T) {
	path := writeTempFile(t, "edicheck-*.x12", sampleDocument())
	var code int
	out := captureStdout(t, func() { code = runValidate([]string{path}) })
	if code != exitOK {
		t.Fatalf("runValidate() = %d, want exitOK", code)
	}
	if !strings.Contains(out, "OK:") {
		t.Errorf("expected text output to report OK, got: %s", out)
	}
}

func TestRunValidateJSON(t *testing.T) {
	path := writeTempFile(t, "edicheck-*.x12", sampleDocument())
	var code int
	out := captureStdout(t, func() { code = runValidate([]string{"--format", "json", path}) })
	if code != exitOK {
		t.Fatalf("runValidate() = %d, want exitOK", code)
	}
	if !strings.Contains(out, "\"valid\": true") {
		t.Errorf("expected JSON output to report valid: true, got: %s", out)
	}
}

func TestRunValidateMissingFile(t *testing.T) {
	if got := runValidate([]string{"/nonexistent/path.x12"}); got != exitError {
		t.Errorf("runValidate() = %d, want exitError", got)
	}
}

func TestRunPlugins(t *testing.T) {
	var code int
	out := captureStdout(t, func() { code = runPlugins(nil) })
	if code != exitOK {
		t.Fatalf("runPlugins() = %d, want exitOK", code)
	}
	if !strings.Contains(out, "<plugin>") {
		t.Errorf("expected manifest XML output, got: %s", out)
	}
}

package protocol

import (
	"errors"
	"testing"
)

func TestEscapeReservedCharacters(t *testing.T) {
	cases := []struct {
		raw     string
		escaped string
	}{
		{`back\slash`, `back\\slash`},
		{"with space", `with\sspace`},
		{"pipe|cell", `pipe\pcell`},
		{"multi\nline\r", `multi\nline\r`},
		{"tabbed\tout", `tabbed\tout`},
		{"a/b", `a\/b`},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := Escape(tc.raw); got != tc.escaped {
			t.Fatalf("escape %q: got %q want %q", tc.raw, got, tc.escaped)
		}
		if got := Unescape(tc.escaped); got != tc.raw {
			t.Fatalf("unescape %q: got %q want %q", tc.escaped, got, tc.raw)
		}
	}
}

func TestUnescapeDoesNotReinterpretEscapedBackslash(t *testing.T) {
	// \\s on the wire is a literal backslash followed by 's', not a space.
	if got := Unescape(`\\s`); got != `\s` {
		t.Fatalf("got %q want %q", got, `\s`)
	}
}

func TestVerbAndMarkers(t *testing.T) {
	if got := Verb("error id=0 msg=ok"); got != "error" {
		t.Fatalf("unexpected verb: %q", got)
	}
	if got := Verb("whoami"); got != "whoami" {
		t.Fatalf("unexpected verb: %q", got)
	}
	if !IsStatus("error id=0 msg=ok") {
		t.Fatalf("expected status line")
	}
	if IsStatus("notify cliententerview clid=5") {
		t.Fatalf("notification misread as status")
	}
	if !IsNotification("notifytextmessage msg=hi") {
		t.Fatalf("expected notification line")
	}
	if IsNotification("name=x") {
		t.Fatalf("payload misread as notification")
	}
}

func TestGreetingAccepted(t *testing.T) {
	if !GreetingAccepted("TS3", DefaultGreetings) {
		t.Fatalf("expected TS3 greeting accepted")
	}
	if !GreetingAccepted("TeaSpeak v1.4", DefaultGreetings) {
		t.Fatalf("expected TeaSpeak greeting accepted")
	}
	if GreetingAccepted("SSH-2.0-OpenSSH", DefaultGreetings) {
		t.Fatalf("unexpected greeting accepted")
	}
	if GreetingAccepted("TS3", nil) {
		t.Fatalf("empty accept set must reject")
	}
}

func TestEncodeCommandScalars(t *testing.T) {
	cmd := EncodeCommand("login",
		Param{Key: "client_login_name", Value: String("x")},
		Param{Key: "client_login_password", Value: String("y")},
	)
	want := "login client_login_name=x client_login_password=y"
	if cmd.String() != want {
		t.Fatalf("got %q want %q", cmd, want)
	}
	if cmd.Verb() != "login" {
		t.Fatalf("unexpected verb: %q", cmd.Verb())
	}
}

func TestEncodeCommandEscapesValues(t *testing.T) {
	cmd := EncodeCommand("sendtextmessage",
		Param{Key: "targetmode", Value: Int(1)},
		Param{Key: "msg", Value: String("hello world|ok")},
	)
	want := `sendtextmessage targetmode=1 msg=hello\sworld\pok`
	if cmd.String() != want {
		t.Fatalf("got %q want %q", cmd, want)
	}
}

func TestEncodeCommandCoercions(t *testing.T) {
	cmd := EncodeCommand("clientupdate",
		Param{Key: "CLIENT_INPUT_MUTED", Value: Bool(true)},
		Param{Key: "client_output_muted", Value: Bool(false)},
		Param{Key: "client_away_message", Value: Null()},
	)
	want := "clientupdate client_input_muted=1 client_output_muted=0"
	if cmd.String() != want {
		t.Fatalf("got %q want %q", cmd, want)
	}
}

func TestEncodeCommandPositionalKey(t *testing.T) {
	cmd := EncodeCommand("use",
		Param{Key: "1", Value: Int(9987)},
	)
	if cmd.String() != "use 9987" {
		t.Fatalf("got %q", cmd)
	}
}

type fakeNode struct{ id string }

func (n fakeNode) Identifier() string { return n.id }

func TestEncodeCommandReference(t *testing.T) {
	cmd := EncodeCommand("servergroupdelclient",
		Param{Key: "sgid", Value: Ref(fakeNode{id: "6"})},
		Param{Key: "cldbid", Value: Int(42)},
	)
	if cmd.String() != "servergroupdelclient sgid=6 cldbid=42" {
		t.Fatalf("got %q", cmd)
	}
}

func TestEncodeCommandListCells(t *testing.T) {
	cmd := EncodeCommand("clientlist",
		Param{Key: "duration", Value: List(Int(1), Null(), Bool(true))},
	)
	// The null element drops its cell content; remaining cells join on the
	// list separator with true encoded as 1.
	want := "clientlist duration=1|duration=1"
	if cmd.String() != want {
		t.Fatalf("got %q want %q", cmd, want)
	}
}

func TestEncodeCommandListAfterScalars(t *testing.T) {
	cmd := EncodeCommand("clientkick",
		Param{Key: "reasonid", Value: Int(5)},
		Param{Key: "clid", Value: List(Int(1), Int(2), Int(3))},
	)
	want := "clientkick reasonid=5 clid=1|clid=2|clid=3"
	if cmd.String() != want {
		t.Fatalf("got %q want %q", cmd, want)
	}
}

func TestEncodeCommandBareVerbIsTrimmed(t *testing.T) {
	cmd := EncodeCommand("whoami",
		Param{Key: "ignored", Value: Null()},
	)
	if cmd.String() != "whoami" {
		t.Fatalf("got %q", cmd)
	}
}

func TestParseStatusSuccess(t *testing.T) {
	st, err := ParseStatus("error id=0 msg=ok")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !st.OK() {
		t.Fatalf("expected success status: %+v", st)
	}
	if st.Msg != "ok" {
		t.Fatalf("unexpected msg: %q", st.Msg)
	}
}

func TestParseStatusFailure(t *testing.T) {
	st, err := ParseStatus(`error id=2568 msg=insufficient\sclient\spermissions failed_permid=169`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if st.OK() {
		t.Fatalf("expected failure status")
	}
	if st.ID != 2568 {
		t.Fatalf("unexpected id: %d", st.ID)
	}
	if st.Msg != "insufficient client permissions" {
		t.Fatalf("unexpected msg: %q", st.Msg)
	}
	if st.FailedPermID != 169 {
		t.Fatalf("unexpected failed_permid: %d", st.FailedPermID)
	}
}

func TestParseStatusRejectsPayloadLine(t *testing.T) {
	_, err := ParseStatus("name=x version=3")
	if !errors.Is(err, ErrNotStatusLine) {
		t.Fatalf("expected ErrNotStatusLine, got %v", err)
	}
}

func TestDecodePairs(t *testing.T) {
	pairs := DecodePairs(`client_nickname=query\sadmin clid=1 away`)
	if pairs["client_nickname"] != "query admin" {
		t.Fatalf("unexpected nickname: %q", pairs["client_nickname"])
	}
	if pairs["clid"] != "1" {
		t.Fatalf("unexpected clid: %q", pairs["clid"])
	}
	if v, ok := pairs["away"]; !ok || v != "" {
		t.Fatalf("expected bare token mapped to empty string")
	}
}

func TestDecodeList(t *testing.T) {
	rows := DecodeList("clid=1 client_nickname=a|clid=2 client_nickname=b")
	if len(rows) != 2 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	if rows[0]["clid"] != "1" || rows[1]["client_nickname"] != "b" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

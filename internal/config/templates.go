package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "client":
		return clientTemplate, nil
	case "monitor":
		return monitorTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const clientTemplate = `address = "voice.example.net:10011"
mode = "tcp"
blocking = true
dial_timeout_seconds = 10
login = "serveradmin"
password = ""
server_port = 9987
nickname = "queryctl"

# Extra accepted greeting prefixes, e.g. for forks of the protocol.
# greetings = ["TS3", "TeaSpeak"]

[ssh]
user = ""
password = ""
private_key_file = ""
`

const monitorTemplate = `metrics_addr = "127.0.0.1:9180"
events = ["server", "textserver", "channel"]

[client]
address = "voice.example.net:10011"
mode = "tcp"
dial_timeout_seconds = 10
login = "serveradmin"
password = ""
server_port = 9987
nickname = "querymon"
`

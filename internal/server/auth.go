package server

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"

	"cutdesk/internal/logging"
)

// authorize accepts keys listed in the user's authorized_keys file
func (s *Server) authorize(ctx ssh.Context, key ssh.PublicKey) bool {
	fingerprint := gossh.FingerprintSHA256(key)
	authorized := isKeyAuthorized(key, s.authorizedKeysPath)

	if authorized {
		logging.Logger.Info("SSH key authenticated",
			"user", ctx.User(),
			"fingerprint", fingerprint,
			"key_type", key.Type())
	} else {
		logging.Logger.Warn("Unauthorized SSH key",
			"user", ctx.User(),
			"fingerprint", fingerprint,
			"key_type", key.Type())
	}
	return authorized
}

// isKeyAuthorized checks if the client's public key is in authorized_keys
func isKeyAuthorized(clientKey gossh.PublicKey, authorizedKeysPath string) bool {
	file, err := os.Open(authorizedKeysPath)
	if err != nil {
		logging.Logger.Warn("Failed to open authorized_keys", "error", err, "path", authorizedKeysPath)
		return false
	}
	defer file.Close()

	want := clientKey.Marshal()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		authorizedKey, _, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			logging.Logger.Debug("Failed to parse authorized key line", "error", err)
			continue
		}
		if bytes.Equal(want, authorizedKey.Marshal()) {
			return true
		}
	}

	if err := scanner.Err(); err != nil {
		logging.Logger.Error("Error reading authorized_keys", "error", err)
	}
	return false
}

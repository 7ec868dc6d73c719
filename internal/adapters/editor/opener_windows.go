//go:build windows

package editor

import "os/exec"

var defaultEditors = []string{
	"notepad.exe",
}

func findPlatformEditor(path string) (string, []string) {
	for _, editor := range defaultEditors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor, []string{path}
		}
	}
	return "", nil
}

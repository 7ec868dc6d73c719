package domain

import "errors"

var (
	ErrBindingConflict = errors.New("key is already bound")
	ErrEmptyCombo      = errors.New("key combo is empty")
	ErrKeymapNotFound  = errors.New("keymap not found")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownPreset   = errors.New("unknown preset")
)

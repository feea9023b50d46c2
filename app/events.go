package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// EventHandler maps keys to bool options and actions
type EventHandler struct {
	options map[glfw.Key]keyOption
	actions map[glfw.Key]func()
}

func NewEventHandler() *EventHandler {
	return &EventHandler{
		options: make(map[glfw.Key]keyOption),
		actions: make(map[glfw.Key]func()),
	}
}

type KeyCallbackKind int

const (
	// Switch flips the value on every press
	Switch KeyCallbackKind = iota
	// Hold keeps the value true while the key is down
	Hold
)

type keyOption struct {
	kind  KeyCallbackKind
	value *bool
}

func (eh *EventHandler) AddOption(key glfw.Key, value *bool, kind KeyCallbackKind) {
	eh.options[key] = keyOption{
		kind:  kind,
		value: value,
	}
}

// AddAction runs action when key is pressed
func (eh *EventHandler) AddAction(key glfw.Key, action func()) {
	eh.actions[key] = action
}

func (eh *EventHandler) KeyCallback() glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if act, found := eh.actions[key]; found && action == glfw.Press {
			act()
		}

		option, found := eh.options[key]
		if !found {
			return
		}

		switch option.kind {
		case Switch:
			if action == glfw.Press {
				*option.value = !*option.value
			}
		case Hold:
			*option.value = (action != glfw.Release)
		}
	}
}

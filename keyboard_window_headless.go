//go:build headless

package main

import "fmt"

func init() {
	compiledFeatures = append(compiledFeatures, "window:unavailable")
}

type KeyboardWindow struct{}

func NewKeyboardWindow() (*KeyboardWindow, error) {
	return nil, fmt.Errorf("window front end unavailable in headless mode")
}

func (w *KeyboardWindow) Events() <-chan Key           { return nil }
func (w *KeyboardWindow) SetPasteHandler(func(string)) {}
func (w *KeyboardWindow) ShowNote(Key, float32)        {}
func (w *KeyboardWindow) Run() error                   { return nil }
func (w *KeyboardWindow) Close()                       {}

// Package ui is the interactive waiting screen. It owns no watch state; it
// forwards button presses to a Controller and quits once the controller
// reports an outcome.
package ui

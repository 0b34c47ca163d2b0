// Package view implements the per-message interaction state machine.
//
// A View is created by the /start command and tracks two things for
// the message it renders on: an append-only text log and the set of
// widgets currently attached. Dropdown selections reset the log and
// attach the three buttons (idempotently — nothing ever detaches),
// button presses and modal submissions append lines. Every transition
// mutates local state first; pushing the re-rendered message to the
// platform is the caller's job, so a failed edit never corrupts the
// view.
package view

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// EmbedTitle is the fixed title of every rendered view message.
const EmbedTitle = "Component Example"

// Fixed button identifiers, in display order.
const (
	ButtonOneID   = "button_1"
	ButtonTwoID   = "button_2"
	ButtonThreeID = "button_3"
)

// View holds the interaction state for a single message. Safe for
// concurrent use; discordgo dispatches each gateway event on its own
// goroutine.
type View struct {
	mu        sync.Mutex
	messageID string
	lines     []string
	dropdown  *Dropdown
	buttons   []*Button
	attached  map[string]bool
	modal     *Modal
}

// New returns a view with an empty log, the dropdown, and the three
// buttons created but not yet attached.
func New() *View {
	return &View{
		dropdown: NewDropdown(SelectCustomID, "Value1", "Value2", "Value3"),
		buttons: []*Button{
			NewButton(ButtonOneID, "Button1", discordgo.DangerButton),
			NewButton(ButtonTwoID, "Button2", discordgo.SuccessButton),
			NewButton(ButtonThreeID, "Button3", discordgo.PrimaryButton),
		},
		attached: make(map[string]bool),
		modal:    NewModal("Enter a value", "Please enter a text value"),
	}
}

// Bind associates the view with the message it was sent as. The
// message does not exist until the initial send succeeds, so binding
// is a separate step — and a one-shot one: a second call is an error.
func (v *View) Bind(messageID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.messageID != "" {
		return fmt.Errorf("view already bound to message %s", v.messageID)
	}
	if messageID == "" {
		return fmt.Errorf("cannot bind view to an empty message id")
	}
	v.messageID = messageID
	return nil
}

// MessageID returns the bound message ID, empty if not yet bound.
func (v *View) MessageID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.messageID
}

// Select handles a dropdown selection: the log restarts with a single
// line naming the chosen values and all buttons become attached.
// Attaching is idempotent, so re-selecting with buttons already shown
// only resets the text.
func (v *View) Select(values []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lines = []string{fmt.Sprintf("%s selected in select option", strings.Join(values, ", "))}
	for _, b := range v.buttons {
		v.attached[b.ID()] = true
	}
}

// Press appends a line for the pressed button. Repeated presses of the
// same button append repeated lines; each press is a distinct event.
func (v *View) Press(buttonID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	b := v.button(buttonID)
	if b == nil {
		return fmt.Errorf("unknown button %q", buttonID)
	}
	v.lines = append(v.lines, fmt.Sprintf("%s was pressed!", b.Label()))
	return nil
}

// SubmitModal appends the value entered in the modal. The widget set
// is untouched; the modal was never part of it.
func (v *View) SubmitModal(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lines = append(v.lines, fmt.Sprintf("Modal was called and value entered is %s", value))
}

// Modal returns the text-entry dialog spawned by button presses. All
// buttons share it; the submitted value always lands in this view's
// log.
func (v *View) Modal() *Modal {
	return v.modal
}

// Text returns the accumulated log as a single newline-joined block.
func (v *View) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return strings.Join(v.lines, "\n")
}

// Lines returns a copy of the log entries.
func (v *View) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.lines))
	copy(out, v.lines)
	return out
}

// Attached returns the IDs of the attached buttons in display order.
func (v *View) Attached() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	var ids []string
	for _, b := range v.buttons {
		if v.attached[b.ID()] {
			ids = append(ids, b.ID())
		}
	}
	return ids
}

// Components renders the current widget set: the dropdown row, plus a
// button row once any buttons are attached.
func (v *View) Components() []discordgo.MessageComponent {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{v.dropdown.Describe()},
		},
	}

	var buttons []discordgo.MessageComponent
	for _, b := range v.buttons {
		if v.attached[b.ID()] {
			buttons = append(buttons, b.Describe())
		}
	}
	if len(buttons) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

// Embed renders the current log.
func (v *View) Embed() *discordgo.MessageEmbed {
	return MakeEmbed(v.Text())
}

func (v *View) button(id string) *Button {
	for _, b := range v.buttons {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// IsButtonID reports whether id names one of the view buttons.
func IsButtonID(id string) bool {
	switch id {
	case ButtonOneID, ButtonTwoID, ButtonThreeID:
		return true
	}
	return false
}

// MakeEmbed keeps the rendered message consistent: fixed title, the
// text log as the body.
func MakeEmbed(text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       EmbedTitle,
		Description: text,
	}
}

package view

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Component custom IDs. The modal ID carries the owning message ID as
// a suffix because a modal submission arrives as its own interaction
// and must be routed back to the view that spawned it.
const (
	SelectCustomID      = "component_select"
	ModalCustomIDPrefix = "component_modal"
	TextInputCustomID   = "text_value"
)

// Widget is one interactive element of a component view. Describe
// returns the display fragment the platform renders for it.
type Widget interface {
	ID() string
	Describe() discordgo.MessageComponent
}

// Dropdown is the select menu shown on every view message.
type Dropdown struct {
	id      string
	options []discordgo.SelectMenuOption
}

// NewDropdown builds a dropdown whose option labels double as values.
func NewDropdown(id string, values ...string) *Dropdown {
	options := make([]discordgo.SelectMenuOption, 0, len(values))
	for _, v := range values {
		options = append(options, discordgo.SelectMenuOption{Label: v, Value: v})
	}
	return &Dropdown{id: id, options: options}
}

func (d *Dropdown) ID() string { return d.id }

func (d *Dropdown) Describe() discordgo.MessageComponent {
	minValues := 1
	return discordgo.SelectMenu{
		MenuType:  discordgo.StringSelectMenu,
		CustomID:  d.id,
		MinValues: &minValues,
		MaxValues: len(d.options),
		Options:   d.options,
	}
}

// Button is one of the fixed buttons attached after a dropdown choice.
type Button struct {
	id    string
	label string
	style discordgo.ButtonStyle
}

func NewButton(id, label string, style discordgo.ButtonStyle) *Button {
	return &Button{id: id, label: label, style: style}
}

func (b *Button) ID() string    { return b.id }
func (b *Button) Label() string { return b.label }

func (b *Button) Describe() discordgo.MessageComponent {
	return discordgo.Button{
		CustomID: b.id,
		Label:    b.label,
		Style:    b.style,
	}
}

// Modal is the ephemeral text-entry dialog opened by a button press.
// It is never attached to a message; it renders once, collects one
// value, and disappears.
type Modal struct {
	title      string
	inputLabel string
}

func NewModal(title, inputLabel string) *Modal {
	return &Modal{title: title, inputLabel: inputLabel}
}

func (m *Modal) ID() string { return ModalCustomIDPrefix }

func (m *Modal) Describe() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID: TextInputCustomID,
				Label:    m.inputLabel,
				Style:    discordgo.TextInputShort,
				Required: true,
			},
		},
	}
}

// ResponseData builds the modal interaction response for the view
// bound to messageID.
func (m *Modal) ResponseData(messageID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID:   ModalCustomID(messageID),
		Title:      m.title,
		Components: []discordgo.MessageComponent{m.Describe()},
	}
}

// ModalCustomID encodes the owning message ID into a modal custom ID.
func ModalCustomID(messageID string) string {
	return fmt.Sprintf("%s:%s", ModalCustomIDPrefix, messageID)
}

// ParseModalCustomID extracts the owning message ID from a modal
// custom ID produced by ModalCustomID.
func ParseModalCustomID(customID string) (string, error) {
	prefix := ModalCustomIDPrefix + ":"
	if !strings.HasPrefix(customID, prefix) || len(customID) == len(prefix) {
		return "", fmt.Errorf("not a modal custom id: %q", customID)
	}
	return customID[len(prefix):], nil
}

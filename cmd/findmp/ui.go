package main

import (
	"fmt"
	"strings"

	"rep-lookup/internal/postcode"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	pink   = lipgloss.Color("205")
	cyan   = lipgloss.Color("86")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")
	red    = lipgloss.Color("196")
	purple = lipgloss.Color("99")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pink)

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Width(10)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Padding(0, 1)

	warnStyle  = lipgloss.NewStyle().Foreground(yellow)
	errorStyle = lipgloss.NewStyle().Foreground(red).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(green)
)

func promptPostalCode() (string, error) {
	var raw string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Postal code").
				Description("Find your federal Member of Parliament (e.g. K1A 0A6)").
				Placeholder("K1A 0A6").
				Value(&raw).
				Validate(func(s string) error {
					if _, err := postcode.Parse(s); err != nil {
						return fmt.Errorf("enter a valid Canadian postal code")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return raw, nil
}

func confirmAnother() bool {
	again := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Look up another postal code?").
				Affirmative("Yes").
				Negative("No").
				Value(&again),
		),
	)
	if err := form.Run(); err != nil {
		return false
	}
	return again
}

func renderResult(r result) string {
	rec := r.Representative

	var b strings.Builder
	b.WriteString(titleStyle.Render(rec.Name))
	b.WriteString("\n")
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Riding", rec.DistrictName)
	row("Party", rec.PartyName)
	row("Office", rec.ElectedOffice)
	row("Postal", r.PostalCode)

	switch {
	case r.Recipient.Address == "":
		row("Email", warnStyle.Render("unknown"))
	case r.Recipient.Derived:
		row("Email", r.Recipient.Address+" "+warnStyle.Render("(guessed from name)"))
	default:
		row("Email", okStyle.Render(r.Recipient.Address))
	}
	row("Web", rec.URL)

	if r.Ambiguous {
		b.WriteString(warnStyle.Render("More than one representative matched; showing the first."))
		b.WriteString("\n")
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderLinks(r result) string {
	if r.Links == nil {
		return warnStyle.Render("No email address available for a compose link.")
	}
	return strings.Join([]string{
		labelStyle.Render("Mail app") + r.Links.Mailto,
		labelStyle.Render("Gmail") + r.Links.Gmail,
		labelStyle.Render("Outlook") + r.Links.Outlook,
	}, "\n")
}

func renderError(msg string) string {
	return errorStyle.Render(msg)
}

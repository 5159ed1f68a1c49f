package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"reelgate/internal/sponsors"
	"reelgate/internal/store"
)

func (e *Engine) introFor(kind Kind) string {
	switch kind {
	case KindAddFilm:
		return fmt.Sprintf("Adding a new film. Send %q at any step to cancel.\nEnter the film code:", e.cancelWord)
	case KindAddSponsor:
		return fmt.Sprintf("Adding a sponsor channel. Send %q to cancel.\nEnter the channel name (like @channel):", e.cancelWord)
	case KindRemoveSponsor:
		return fmt.Sprintf("Removing a sponsor channel. Send %q to cancel.\nEnter the channel name (like @channel):", e.cancelWord)
	default:
		return "Unknown operation"
	}
}

func (e *Engine) stepsFor(kind Kind) []step {
	switch kind {
	case KindAddFilm:
		return []step{
			{field: "code", validate: e.validateCode},
			{field: "title", prompt: "Enter the film title:", validate: requireText("title")},
			{field: "director", prompt: "Enter the director:", validate: requireText("director")},
			{field: "year", prompt: "Enter the release year:", validate: validateYear},
			{field: "description", prompt: "Enter the description:", validate: requireText("description")},
		}
	case KindAddSponsor, KindRemoveSponsor:
		return []step{
			{field: "channel", validate: e.validateChannel(kind)},
		}
	default:
		return nil
	}
}

func (e *Engine) validateCode(ctx context.Context, _ map[string]string, text string) (string, string, error) {
	code, err := strconv.ParseInt(text, 10, 64)
	if err != nil || code <= 0 {
		return "", "A film code is a positive number. Enter the film code:", nil
	}
	_, err = e.catalog.Lookup(ctx, code)
	if err == nil {
		return "", fmt.Sprintf("Code %d is already taken. Enter a different code:", code), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", "", err
	}
	return text, "", nil
}

func requireText(field string) func(context.Context, map[string]string, string) (string, string, error) {
	return func(_ context.Context, _ map[string]string, text string) (string, string, error) {
		if text == "" {
			return "", fmt.Sprintf("The %s cannot be empty. Try again:", field), nil
		}
		return text, "", nil
	}
}

func validateYear(_ context.Context, _ map[string]string, text string) (string, string, error) {
	year, err := strconv.Atoi(text)
	if err != nil || year < 1888 || year > time.Now().Year()+1 {
		return "", "That does not look like a release year. Enter the release year:", nil
	}
	return text, "", nil
}

func (e *Engine) validateChannel(kind Kind) func(context.Context, map[string]string, string) (string, string, error) {
	return func(ctx context.Context, _ map[string]string, text string) (string, string, error) {
		channel, err := sponsors.NormalizeChannel(text)
		if err != nil {
			return "", "Channel names look like @channel. Try again:", nil
		}
		known, err := e.sponsors.IsKnown(ctx, channel)
		if err != nil {
			return "", "", err
		}
		if kind == KindAddSponsor && known {
			return "", fmt.Sprintf("%s is already in the sponsor list. Enter another channel:", channel), nil
		}
		if kind == KindRemoveSponsor && !known {
			return "", fmt.Sprintf("There is no %s in the sponsor list. Enter another channel:", channel), nil
		}
		return channel, "", nil
	}
}

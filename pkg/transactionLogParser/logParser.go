// Package transactionLogParser reconstructs structured records from the
// weakly-structured event logs that Cosmos-SDK chains emit.
package transactionLogParser

import (
	"regexp"
	"strings"

	"github.com/chainledger/chainledger/pkg/transaction"
)

const UnknownDenom = "Unknown"

// Coin is a parsed (rawAmount, denom) pair from a composite amount string.
// Amount stays a raw integer string; scaling happens once the denom's
// precision is known.
type Coin struct {
	Amount string
	Denom  string
}

// GroupAttributes partitions a flat attribute list into its logical
// sub-records. Repeated records are flattened on the wire with repeating
// key cycles (recipient, sender, amount, recipient, sender, amount, ...),
// so a group ends right before the next occurrence of its starting key.
// A list with no repetition yields a single group covering the whole slice.
func GroupAttributes(attributes []transaction.Attribute) [][]transaction.Attribute {
	groups := make([][]transaction.Attribute, 0)

	for i := 0; i < len(attributes); {
		startKey := attributes[i].Key
		end := len(attributes)
		for j := i + 1; j < len(attributes); j++ {
			if attributes[j].Key == startKey {
				end = j
				break
			}
		}
		groups = append(groups, attributes[i:end])
		i = end
	}

	return groups
}

// ValueOfKey returns the first attribute value for key, keyed by name
// rather than position so that log-format revisions reordering attributes
// do not break extraction.
func ValueOfKey(attributes []transaction.Attribute, key string) (string, bool) {
	for _, attr := range attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// FirstEvent returns the first event of the given type in the log, if any.
func FirstEvent(log transaction.Log, eventType string) (transaction.Event, bool) {
	for _, event := range log.Events {
		if event.Type == eventType {
			return event, true
		}
	}
	return transaction.Event{}, false
}

// EventsOfType filters a log's events down to one type, preserving order.
func EventsOfType(log transaction.Log, eventType string) []transaction.Event {
	events := make([]transaction.Event, 0)
	for _, event := range log.Events {
		if event.Type == eventType {
			events = append(events, event)
		}
	}
	return events
}

var (
	leadingDigits = regexp.MustCompile(`^\d+`)
	alphaRun      = regexp.MustCompile(`[a-zA-Z]+`)
)

// ParseCoins splits a composite amount string
// ("500000uatom,250ibc/ABCD...") into raw (amount, denom) pairs. Multi
// asset amounts are comma joined; each piece is a decimal digit run
// followed by the denom token. Bridged denoms keep their full
// slash-qualified form; native denoms are the bare lowercase run.
// Malformed pieces degrade to "0"/"Unknown" rather than failing.
func ParseCoins(composite string) []Coin {
	parts := strings.Split(composite, ",")
	coins := make([]Coin, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		amount := leadingDigits.FindString(part)
		rest := strings.TrimPrefix(part, amount)

		var denom string
		if strings.Contains(rest, "/") {
			// ibc/<hash>, factory/<addr>/<name>, gamm/pool/<id> and the like
			denom = rest
		} else {
			denom = alphaRun.FindString(rest)
		}

		if amount == "" {
			amount = "0"
		}
		if denom == "" {
			denom = UnknownDenom
		}
		coins = append(coins, Coin{Amount: amount, Denom: denom})
	}

	return coins
}

// ActionsInLogs collects the ordered, de-duplicated set of action values
// across every message-typed event in every log. The order of first
// appearance decides processor dispatch order.
func ActionsInLogs(logs []transaction.Log) []string {
	seen := make(map[string]bool)
	actions := make([]string, 0)
	for _, log := range logs {
		for _, event := range log.Events {
			if event.Type != "message" {
				continue
			}
			action, ok := ValueOfKey(event.Attributes, "action")
			if !ok || action == "" || seen[action] {
				continue
			}
			seen[action] = true
			actions = append(actions, action)
		}
	}
	return actions
}

// Package transaction holds the wire types for dumped Cosmos-SDK
// transaction records. The type-tagged envelope is untagged once at
// decode time; downstream code never re-indexes by the raw "@type" key.
package transaction

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Attribute is a single key/value pair inside an event. Attributes for
// repeated sub-events are not nested on the wire; they arrive as one flat
// list with repeating key cycles.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is one emitted event: a type tag plus its flat attribute list.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Log carries the events emitted by one sub-message. Logs appear in the
// same order as Body.Messages.
type Log struct {
	MsgIndex int     `json:"msg_index"`
	Events   []Event `json:"events"`
}

// Coin is a raw on-chain amount, pre decimal scaling.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type Fee struct {
	Amount   []Coin `json:"amount"`
	GasLimit string `json:"gas_limit"`
}

type AuthInfo struct {
	Fee Fee `json:"fee"`
}

// Message is one sub-message bundled in the transaction body. The shape
// varies per message type, so it stays a raw map; TypeURL exposes the
// discriminator.
type Message map[string]json.RawMessage

func (m Message) TypeURL() string {
	raw, ok := m["@type"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

type Body struct {
	Messages []Message `json:"messages"`
}

// Envelope is the type-tagged transaction union. On the wire the payload
// sits under a key derived from the "@type" value with dots replaced by
// dashes; UnmarshalJSON untags it once.
type Envelope struct {
	TypeURL  string
	Body     Body
	AuthInfo AuthInfo
}

type envelopePayload struct {
	Body     Body     `json:"body"`
	AuthInfo AuthInfo `json:"auth_info"`
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	typeRaw, ok := raw["@type"]
	if !ok {
		return errors.New("transaction envelope is missing the @type tag")
	}
	if err := json.Unmarshal(typeRaw, &e.TypeURL); err != nil {
		return errors.Wrap(err, "invalid @type tag")
	}

	payloadKey := strings.ReplaceAll(e.TypeURL, ".", "-")
	payloadRaw, ok := raw[payloadKey]
	if !ok {
		// Some dumps skip the indirection and inline body/auth_info at the
		// top level.
		payloadRaw = data
	}

	var payload envelopePayload
	if err := json.Unmarshal(payloadRaw, &payload); err != nil {
		return errors.Wrapf(err, "failed to decode envelope payload for %s", e.TypeURL)
	}
	e.Body = payload.Body
	e.AuthInfo = payload.AuthInfo
	return nil
}

// Transaction is one already-executed, already-indexed transaction record.
// Empty Logs means the transaction failed and had no economic effect
// beyond the fee.
type Transaction struct {
	Hash      string   `json:"txhash"`
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Tx        Envelope `json:"tx"`
	Logs      []Log    `json:"logs"`
}

func (t *Transaction) Failed() bool {
	return len(t.Logs) == 0
}

// FeeCoin returns the primary fee coin. Chains may list several coins;
// only the first is ever charged against the reported wallet.
func (t *Transaction) FeeCoin() (Coin, error) {
	amounts := t.Tx.AuthInfo.Fee.Amount
	if len(amounts) == 0 {
		return Coin{}, errors.Errorf("transaction %s has no fee amounts", t.Hash)
	}
	return amounts[0], nil
}

// MessageTypeURLs lists the distinct type tags of the bundled
// sub-messages, in order of first appearance. Used as the action fallback
// for transactions that predate the action attribute convention.
func (t *Transaction) MessageTypeURLs() []string {
	seen := make(map[string]bool)
	urls := make([]string, 0, len(t.Tx.Body.Messages))
	for _, msg := range t.Tx.Body.Messages {
		u := msg.TypeURL()
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

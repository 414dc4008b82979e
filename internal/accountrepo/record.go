package accountrepo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Record keys in the order they are written.
const (
	keyOwnerID            = "owner_id"
	keyName               = "name"
	keyAge                = "age"
	keySalary             = "salary"
	keyAccountNumber      = "account_number"
	keyPIN                = "pin"
	keyBalance            = "balance"
	keyTransactionHistory = "transaction_history"
)

var recordKeys = []string{
	keyOwnerID,
	keyName,
	keyAge,
	keySalary,
	keyAccountNumber,
	keyPIN,
	keyBalance,
	keyTransactionHistory,
}

const separator = ": "

// historyEntry is the stored shape of a transaction.
type historyEntry struct {
	Date      string          `json:"date"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient *string         `json:"recipient"`
}

// Encode serializes the account as "key: value" lines.
func Encode(a domain.Account) ([]byte, error) {
	for key, v := range map[string]string{
		keyOwnerID:       a.OwnerID,
		keyName:          a.Name,
		keyAccountNumber: a.Number,
		keyPIN:           a.PIN,
	} {
		if strings.ContainsAny(v, "\r\n") {
			return nil, errors.Errorf("encode record: %s contains a line break", key)
		}
	}

	history, err := encodeHistory(a.History)
	if err != nil {
		return nil, err
	}

	values := map[string]string{
		keyOwnerID:            a.OwnerID,
		keyName:               a.Name,
		keyAge:                strconv.Itoa(a.Age),
		keySalary:             a.Salary.String(),
		keyAccountNumber:      a.Number,
		keyPIN:                a.PIN,
		keyBalance:            a.Balance.String(),
		keyTransactionHistory: history,
	}

	var buf bytes.Buffer
	for _, key := range recordKeys {
		buf.WriteString(key)
		buf.WriteString(separator)
		buf.WriteString(values[key])
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func encodeHistory(h domain.History) (string, error) {
	entries := make([]historyEntry, len(h))

	for i, t := range h {
		entries[i] = historyEntry{
			Date:   t.Date.Format(domain.DateLayout),
			Type:   string(t.Type),
			Amount: t.Amount,
		}

		if t.Type == domain.Transfer {
			recipient := t.Recipient
			entries[i].Recipient = &recipient
		}
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return "", errors.Wrap(err, "encode transaction history")
	}

	return string(b), nil
}

func malformed(format string, args ...any) error {
	return errors.Wrapf(domain.ErrMalformedRecord, format, args...)
}

// Decode parses a record written by Encode.
//
// Any unexpected shape is reported as domain.ErrMalformedRecord.
func Decode(r io.Reader) (domain.Account, error) {
	var a domain.Account

	fields := make(map[string]string, len(recordKeys))

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, separator)
		if !ok {
			return a, malformed("line %d: missing %q separator", lineNo, separator)
		}

		if !isRecordKey(key) {
			return a, malformed("line %d: unknown key %q", lineNo, key)
		}

		if _, dup := fields[key]; dup {
			return a, malformed("line %d: duplicate key %q", lineNo, key)
		}

		fields[key] = value
	}

	if err := scanner.Err(); err != nil {
		return a, errors.Wrap(err, "read record")
	}

	for _, key := range recordKeys {
		if _, ok := fields[key]; !ok {
			return a, malformed("missing key %q", key)
		}
	}

	age, err := decodeNumber(keyAge, fields[keyAge])
	if err != nil {
		return a, err
	}

	if !age.IsInteger() || age.IsNegative() {
		return a, malformed("age %q is not a whole non-negative number", fields[keyAge])
	}

	salary, err := decodeNumber(keySalary, fields[keySalary])
	if err != nil {
		return a, err
	}

	balance, err := decodeNumber(keyBalance, fields[keyBalance])
	if err != nil {
		return a, err
	}

	if balance.IsNegative() {
		return a, malformed("negative balance %q", fields[keyBalance])
	}

	history, err := decodeHistory(fields[keyTransactionHistory])
	if err != nil {
		return a, err
	}

	a = domain.Account{
		OwnerID: fields[keyOwnerID],
		Name:    fields[keyName],
		Age:     int(age.IntPart()),
		Salary:  salary,
		Number:  fields[keyAccountNumber],
		PIN:     fields[keyPIN],
		Balance: balance,
		History: history,
	}

	return a, nil
}

func isRecordKey(key string) bool {
	for _, k := range recordKeys {
		if k == key {
			return true
		}
	}
	return false
}

func decodeNumber(key, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, malformed("%s %q is not a number", key, value)
	}

	return d, nil
}

func decodeHistory(value string) (domain.History, error) {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.DisallowUnknownFields()

	var entries []historyEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, malformed("transaction history: %v", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed("transaction history: trailing data")
	}

	if entries == nil {
		return nil, malformed("transaction history is not a list")
	}

	if len(entries) == 0 {
		return nil, nil
	}

	history := make(domain.History, 0, len(entries))

	for i, e := range entries {
		date, err := time.ParseInLocation(domain.DateLayout, e.Date, time.Local)
		if err != nil {
			return nil, malformed("transaction %d: bad date %q", i, e.Date)
		}

		tt := domain.TransactionType(e.Type)
		if !tt.Valid() {
			return nil, malformed("transaction %d: unknown type %q", i, e.Type)
		}

		if !e.Amount.IsPositive() {
			return nil, malformed("transaction %d: amount %s is not positive", i, e.Amount)
		}

		t := domain.Transaction{Date: date, Type: tt, Amount: e.Amount}

		switch {
		case tt == domain.Transfer && (e.Recipient == nil || *e.Recipient == ""):
			return nil, malformed("transaction %d: transfer without recipient", i)
		case tt != domain.Transfer && e.Recipient != nil:
			return nil, malformed("transaction %d: recipient on %s", i, tt)
		case e.Recipient != nil:
			t.Recipient = *e.Recipient
		}

		history = append(history, t)
	}

	return history, nil
}

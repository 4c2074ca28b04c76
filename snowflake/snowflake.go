// Package snowflake generates and inspects the 64-bit timestamped identifiers
// the platform uses for every entity.
//
// An ID is laid out as
//
//	((ms - Epoch) << 22) | (worker << 17) | (process << 12) | increment
//
// and is carried over the wire as a quoted decimal string.
package snowflake

import (
	"errors"
	"os"
	"sync"
	"time"

	bw "github.com/bwmarrin/snowflake"
)

// Epoch is the platform's custom epoch, the first millisecond of 2015.
const Epoch int64 = 1420070400000

const (
	timestampShift = 22
	workerShift    = 17
	processShift   = 12

	maxWorker     = 1<<5 - 1
	maxProcess    = 1<<5 - 1
	incrementMask = 1<<12 - 1
)

// ID is a snowflake. It marshals to and from JSON as a quoted string.
type ID = bw.ID

// ErrBeforeEpoch is returned when generating an ID for a time at or before
// the Epoch.
var ErrBeforeEpoch = errors.New("snowflake: timestamp is not after the epoch")

// A Generator mints IDs for one worker/process pair. The increment wraps at
// 4096. Generators are safe for concurrent use.
type Generator struct {
	mu        sync.Mutex
	worker    int64
	process   int64
	increment int64
}

// NewGenerator returns a generator. Worker and process ids must both fit
// in five bits.
func NewGenerator(worker, process int64) (*Generator, error) {
	if worker < 0 || worker > maxWorker {
		return nil, errors.New("snowflake: worker id out of range")
	}
	if process < 0 || process > maxProcess {
		return nil, errors.New("snowflake: process id out of range")
	}

	return &Generator{worker: worker, process: process}, nil
}

// Generate returns an ID stamped with t.
func (g *Generator) Generate(t time.Time) (ID, error) {
	ms := t.UnixMilli()
	if ms <= Epoch {
		return 0, ErrBeforeEpoch
	}

	g.mu.Lock()
	inc := g.increment
	g.increment = (g.increment + 1) & incrementMask
	g.mu.Unlock()

	return ID((ms-Epoch)<<timestampShift |
		g.worker<<workerShift |
		g.process<<processShift |
		inc), nil
}

// process is the per-process generator used by Generate.
var process = &Generator{process: int64(os.Getpid()) & maxProcess}

// Generate mints an ID for t from the per-process generator.
func Generate(t time.Time) (ID, error) { return process.Generate(t) }

// Now mints an ID for the current time from the per-process generator.
func Now() ID {
	id, _ := process.Generate(time.Now())
	return id
}

// Parse reads an ID from its decimal string form.
func Parse(s string) (ID, error) { return bw.ParseString(s) }

// Milliseconds returns the Unix millisecond timestamp embedded in id.
func Milliseconds(id ID) int64 { return int64(id)>>timestampShift + Epoch }

// Timestamp returns the creation time embedded in id.
func Timestamp(id ID) time.Time { return time.UnixMilli(Milliseconds(id)) }

// Worker returns the worker id embedded in id.
func Worker(id ID) int64 { return int64(id) >> workerShift & maxWorker }

// Process returns the process id embedded in id.
func Process(id ID) int64 { return int64(id) >> processShift & maxProcess }

// Increment returns the per-generator increment embedded in id.
func Increment(id ID) int64 { return int64(id) & incrementMask }

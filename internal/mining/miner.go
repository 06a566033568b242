package mining

import (
	"context"
	"encoding/binary"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/wk101/qiner-go/internal/randsource"
)

// Miner owns the epoch-constant mining tape and public key, and drives
// worker goroutines that search for qualifying nonces. A single Miner is
// shared by all workers; everything it exposes after construction is
// either immutable or protected by its own synchronization.
type Miner struct {
	solutionThreshold int
	numWorkers        int
	tape              *MiningTape
	pub               PublicKey
	source            randsource.Source

	scoreCounter     atomic.Uint64
	iterationCounter atomic.Uint64

	foundMu    sync.Mutex
	foundQueue []Nonce
}

// New builds a Miner for the given epoch seed, operator public key, worker
// count, and solution threshold. The mining tape is derived once, here,
// from Expand(seed, seed, tape); it never changes for the lifetime of the
// Miner.
func New(seed Seed, pub PublicKey, numWorkers, solutionThreshold int, source randsource.Source) *Miner {
	return &Miner{
		solutionThreshold: solutionThreshold,
		numWorkers:        numWorkers,
		tape:              buildMiningTape(seed),
		pub:               pub,
		source:            source,
	}
}

// Score returns the total number of qualifying attempts found so far,
// across all workers. The count is a relaxed atomic read; it carries no
// ordering guarantee relative to FoundQueue.
func (m *Miner) Score() uint64 {
	return m.scoreCounter.Load()
}

// Iterations returns the total number of attempts made so far, across all
// workers.
func (m *Miner) Iterations() uint64 {
	return m.iterationCounter.Load()
}

// Drain removes and returns every nonce currently staged in the found
// queue, in the order workers committed them. It is safe to call
// concurrently with running workers; it blocks briefly on the same mutex
// workers try-lock.
func (m *Miner) Drain() []Nonce {
	m.foundMu.Lock()
	defer m.foundMu.Unlock()

	if len(m.foundQueue) == 0 {
		return nil
	}
	out := m.foundQueue
	m.foundQueue = nil
	return out
}

// Run spawns numWorkers goroutines, each pinned to its own OS thread via
// runtime.LockOSThread, and blocks until ctx is done. Each worker
// allocates its LinkTable and NeuronValues once, on the heap, and reuses
// them for every attempt: at N=2^22 a LinkTable is ~32MB and NeuronValues
// is ~4MB, both far too large to carry as goroutine stack locals.
func (m *Miner) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(m.numWorkers)

	for i := 0; i < m.numWorkers; i++ {
		go func() {
			defer wg.Done()
			m.worker(ctx)
		}()
	}

	wg.Wait()
}

func (m *Miner) worker(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	table := new(LinkTable)
	values := new(NeuronValues)

	var staged []Nonce

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var nonce Nonce
		if err := m.drawNonce(&nonce); err != nil {
			continue
		}

		buildLinkTable(m.pub, nonce, table)
		resetNeuronValues(values)

		if score(table, values, m.tape) >= m.solutionThreshold {
			m.scoreCounter.Add(1)
			staged = append(staged, nonce)
		}

		if len(staged) > 0 && m.foundMu.TryLock() {
			m.foundQueue = append(m.foundQueue, staged...)
			m.foundMu.Unlock()
			staged = staged[:0]
		}

		m.iterationCounter.Add(1)
	}
}

func (m *Miner) drawNonce(nonce *Nonce) error {
	var buf [32]byte
	if err := m.source.Fill(buf[:]); err != nil {
		return err
	}
	for i := range nonce {
		nonce[i] = binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
	}
	return nil
}

// Package provider tracks the connection to the selected cluster endpoint.
//
// It is a three-state machine: every selection change moves the state to
// Connecting synchronously, then a background attempt fetches the cluster
// info and dispatches Connected or Failure. Results are stamped with the
// selection that produced them; a result whose selection no longer matches
// the active one is dropped, which stands in for cancellation when attempts
// overlap.
package provider

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/solfront/solana-cluster-provider/internal/cluster"
	"github.com/solfront/solana-cluster-provider/internal/constants"
	"github.com/solfront/solana-cluster-provider/internal/metrics"
	"github.com/solfront/solana-cluster-provider/internal/report"
	"github.com/solfront/solana-cluster-provider/internal/rpc"
)

func logger() *log.Logger { return log.Default().WithPrefix("provider") }

// Status is the connection lifecycle state.
type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusFailure
)

var statusNames = [...]string{"connecting", "connected", "failure"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// StatusNames lists every status name, for metrics labels.
func StatusNames() []string { return statusNames[:] }

// ClusterInfo aggregates the values fetched on a successful connect.
type ClusterInfo struct {
	FirstAvailableBlock uint64            `json:"firstAvailableBlock"`
	EpochSchedule       rpc.EpochSchedule `json:"epochSchedule"`
	EpochInfo           rpc.EpochInfo     `json:"epochInfo"`
	GenesisHash         string            `json:"genesisHash"`
}

// State is the complete connection state. It is replaced wholesale on every
// transition, never mutated in place. Info is non-nil only when Connected.
type State struct {
	Status    Status
	Cluster   cluster.Cluster
	CustomURL string
	Info      *ClusterInfo
}

// Client is the RPC surface the provider needs from an endpoint.
type Client interface {
	GetFirstAvailableBlock(ctx context.Context) (uint64, error)
	GetEpochSchedule(ctx context.Context) (rpc.EpochSchedule, error)
	GetEpochInfo(ctx context.Context) (rpc.EpochInfo, error)
	GetGenesisHash(ctx context.Context) (string, error)
}

// Dialer opens a Client for an endpoint. It is expected to reject malformed
// endpoints before any network I/O.
type Dialer func(endpoint string) (Client, error)

func defaultDialer(endpoint string) (Client, error) {
	return rpc.NewClient(endpoint)
}

// selection identifies a connection attempt.
type selection struct {
	cluster   cluster.Cluster
	customURL string
}

// Options configures a Provider. Zero values get sensible defaults.
type Options struct {
	Cluster   cluster.Cluster
	CustomURL string
	Hostname  string // decides the local/non-local endpoint rewrite
	Reporter  report.Reporter
	Dialer    Dialer
}

// Provider is safe for concurrent use. All transitions are serialized
// through one mutex, the Go rendering of a single reducer dispatch queue.
type Provider struct {
	mu            sync.Mutex
	state         State
	active        selection
	lastCustomURL string
	dialog        bool
	subs          []chan State

	hostname string
	reporter report.Reporter
	dial     Dialer
}

// New builds a provider in the Connecting state for the initial selection.
// No attempt runs until Start (or a selection change) is called.
func New(opts Options) *Provider {
	if opts.Cluster == "" {
		opts.Cluster = cluster.MainnetBeta
	}
	if opts.Cluster.IsCustom() && opts.CustomURL == "" {
		opts.CustomURL = constants.DefaultCustomURL
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Nop{}
	}
	if opts.Dialer == nil {
		opts.Dialer = defaultDialer
	}

	sel := selection{cluster: opts.Cluster, customURL: opts.CustomURL}
	return &Provider{
		state:         State{Status: StatusConnecting, Cluster: sel.cluster, CustomURL: sel.customURL},
		active:        sel,
		lastCustomURL: opts.CustomURL,
		hostname:      opts.Hostname,
		reporter:      opts.Reporter,
		dial:          opts.Dialer,
	}
}

// State returns the current connection state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Endpoint returns the resolved URL for the active selection.
func (p *Provider) Endpoint() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cluster.ResolveURL(p.active.cluster, p.active.customURL, p.hostname)
}

// Subscribe returns a channel receiving every applied state change. Sends
// never block the reducer; a slow consumer misses intermediate states.
func (p *Provider) Subscribe() <-chan State {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan State, 16)
	p.subs = append(p.subs, ch)
	return ch
}

// Start runs the initial connection attempt.
func (p *Provider) Start(ctx context.Context) {
	p.mu.Lock()
	sel := p.active
	p.mu.Unlock()
	p.connect(ctx, sel)
}

// SetCluster switches to a built-in cluster, or to Custom using the last
// known custom endpoint. The state moves to Connecting before returning.
func (p *Provider) SetCluster(ctx context.Context, c cluster.Cluster) {
	p.mu.Lock()
	customURL := ""
	if c.IsCustom() {
		customURL = p.lastCustomURL
		if customURL == "" {
			customURL = constants.DefaultCustomURL
		}
	}
	p.mu.Unlock()

	p.connect(ctx, selection{cluster: c, customURL: customURL})
}

// SetCustomEndpoint switches to the Custom cluster at the given endpoint.
// The state moves to Connecting before returning.
func (p *Provider) SetCustomEndpoint(ctx context.Context, endpoint string) {
	p.connect(ctx, selection{cluster: cluster.Custom, customURL: endpoint})
}

// Reconnect re-runs the active selection. Failures are never retried
// automatically; this is the manual re-trigger.
func (p *Provider) Reconnect(ctx context.Context) {
	p.Start(ctx)
}

// ShowDialog marks the cluster-selection dialog open.
func (p *Provider) ShowDialog() { p.setDialog(true) }

// HideDialog marks the cluster-selection dialog closed.
func (p *Provider) HideDialog() { p.setDialog(false) }

// DialogOpen reports whether the cluster-selection dialog is open.
func (p *Provider) DialogOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialog
}

func (p *Provider) setDialog(open bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialog = open
}

// connect makes sel the active selection, transitions to Connecting
// synchronously and spawns the attempt.
func (p *Provider) connect(ctx context.Context, sel selection) {
	p.mu.Lock()
	p.active = sel
	if sel.cluster.IsCustom() {
		p.lastCustomURL = sel.customURL
	}
	p.state = State{Status: StatusConnecting, Cluster: sel.cluster, CustomURL: sel.customURL}
	metrics.ConnectAttempts.WithLabelValues(sel.cluster.String()).Inc()
	metrics.SetStatus(StatusConnecting.String(), StatusNames())
	p.notifyLocked()
	p.mu.Unlock()

	endpoint := cluster.ResolveURL(sel.cluster, sel.customURL, p.hostname)
	logger().Info("connecting", "cluster", sel.cluster, "endpoint", endpoint)

	go p.attempt(ctx, sel, endpoint)
}

func (p *Provider) attempt(ctx context.Context, sel selection, endpoint string) {
	info, err := p.fetchClusterInfo(ctx, endpoint)
	if err != nil {
		logger().Error("connection failed", "cluster", sel.cluster, "error", err)
		// Custom endpoints are user-supplied; never ship them to the
		// error tracker.
		if !sel.cluster.IsCustom() {
			p.reporter.Report(err, map[string]string{
				"cluster":  sel.cluster.String(),
				"endpoint": endpoint,
			})
		}
		p.dispatch(sel, State{Status: StatusFailure, Cluster: sel.cluster, CustomURL: sel.customURL})
		return
	}

	if expected := sel.cluster.GenesisHash(); expected != "" && info.GenesisHash != expected {
		logger().Warn("endpoint genesis hash does not match cluster",
			"cluster", sel.cluster,
			"expected", expected,
			"got", info.GenesisHash,
		)
	}

	logger().Info("connected", "cluster", sel.cluster, "epoch", info.EpochInfo.Epoch, "genesis_hash", info.GenesisHash)
	p.dispatch(sel, State{Status: StatusConnected, Cluster: sel.cluster, CustomURL: sel.customURL, Info: info})
}

// fetchClusterInfo dials the endpoint and issues the four fetches
// concurrently. They are jointly awaited and fail as a unit: the first
// error cancels the group context for the rest.
func (p *Provider) fetchClusterInfo(ctx context.Context, endpoint string) (*ClusterInfo, error) {
	client, err := p.dial(endpoint)
	if err != nil {
		return nil, err
	}

	var info ClusterInfo
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info.FirstAvailableBlock, err = client.GetFirstAvailableBlock(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		info.EpochSchedule, err = client.GetEpochSchedule(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		info.EpochInfo, err = client.GetEpochInfo(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		info.GenesisHash, err = client.GetGenesisHash(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &info, nil
}

// dispatch applies a result if its selection is still the active one.
// Stale results are dropped and the current state is preserved.
func (p *Provider) dispatch(sel selection, next State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sel != p.active {
		logger().Debug("dropping stale result",
			"cluster", sel.cluster,
			"status", next.Status,
		)
		metrics.StaleResultsDropped.Inc()
		return
	}

	p.state = next
	metrics.ConnectResults.WithLabelValues(sel.cluster.String(), next.Status.String()).Inc()
	metrics.SetStatus(next.Status.String(), StatusNames())
	p.notifyLocked()
}

func (p *Provider) notifyLocked() {
	for _, ch := range p.subs {
		select {
		case ch <- p.state:
		default:
		}
	}
}

package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quiz_answer_llm/internal/credentials"
	"quiz_answer_llm/internal/page"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKeys struct {
	key string
	err error
}

func (f fakeKeys) APIKey(context.Context) (string, error) {
	return f.key, f.err
}

type fakeAsker struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeAsker) Ask(ctx context.Context, apiKey, question string, options []string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeAsker) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSettings struct {
	opened int
}

func (f *fakeSettings) Open() error {
	f.opened++
	return nil
}

type event struct {
	kind  string
	index int
}

type recordingActions struct {
	mu     sync.Mutex
	events []event
}

func (r *recordingActions) add(e event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingActions) ClearHighlights()          { r.add(event{kind: "clear", index: -1}) }
func (r *recordingActions) Highlight(i int, _ string) { r.add(event{kind: "highlight", index: i}) }
func (r *recordingActions) Click(i int, _ string)     { r.add(event{kind: "click", index: i}) }

func (r *recordingActions) Events() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func newTestAnswerer(asker Asker, keys KeySource, settings SettingsOpener, opts Options) *Answerer {
	return NewAnswerer(keys, asker, settings, opts, zap.NewNop())
}

var capitals = Question{Text: "Capital of the UK?", Options: []string{"Paris", "London", "Rome"}}

func TestAnswer_HighlightsAndClicksMatch(t *testing.T) {
	actions := &recordingActions{}
	asker := &fakeAsker{reply: "B. London"}
	answerer := newTestAnswerer(asker, fakeKeys{key: "sk"}, &fakeSettings{}, Options{AutoClick: true})

	outcome, err := answerer.Answer(context.Background(), NewSession(actions), capitals)

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Index)
	assert.Equal(t, "B", outcome.Label)
	assert.Equal(t, "London", outcome.Option)
	assert.False(t, outcome.Ambiguous)
	assert.Equal(t, []event{{"clear", -1}, {"highlight", 1}, {"click", 1}}, actions.Events())
}

func TestAnswer_NoAutoClick(t *testing.T) {
	actions := &recordingActions{}
	answerer := newTestAnswerer(&fakeAsker{reply: "Paris"}, fakeKeys{key: "sk"}, &fakeSettings{}, Options{})

	_, err := answerer.Answer(context.Background(), NewSession(actions), capitals)

	require.NoError(t, err)
	assert.Equal(t, []event{{"clear", -1}, {"highlight", 0}}, actions.Events())
}

func TestAnswer_DelayedClick(t *testing.T) {
	actions := &recordingActions{}
	sess := NewSession(actions)
	answerer := newTestAnswerer(&fakeAsker{reply: "Rome"}, fakeKeys{key: "sk"}, &fakeSettings{}, Options{AutoClick: true, ClickDelay: 10 * time.Millisecond})

	_, err := answerer.Answer(context.Background(), sess, capitals)
	require.NoError(t, err)

	sess.Wait()
	assert.Equal(t, []event{{"clear", -1}, {"highlight", 2}, {"click", 2}}, actions.Events())
}

func TestAnswer_DelayedClickCancelled(t *testing.T) {
	actions := &recordingActions{}
	sess := NewSession(actions)
	answerer := newTestAnswerer(&fakeAsker{reply: "Rome"}, fakeKeys{key: "sk"}, &fakeSettings{}, Options{AutoClick: true, ClickDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	_, err := answerer.Answer(ctx, sess, capitals)
	require.NoError(t, err)
	cancel()

	sess.Wait()
	assert.Equal(t, []event{{"clear", -1}, {"highlight", 2}}, actions.Events())
}

func TestAnswer_NoOptions(t *testing.T) {
	asker := &fakeAsker{reply: "x"}
	answerer := newTestAnswerer(asker, fakeKeys{key: "sk"}, &fakeSettings{}, Options{})

	_, err := answerer.Answer(context.Background(), NewSession(nil), Question{Text: "Q"})

	assert.ErrorIs(t, err, ErrNoOptions)
	assert.Zero(t, asker.Calls())
}

func TestAnswer_MissingCredentialOpensSettings(t *testing.T) {
	asker := &fakeAsker{reply: "Paris"}
	settings := &fakeSettings{}
	sess := NewSession(nil)
	answerer := newTestAnswerer(asker, fakeKeys{err: credentials.ErrMissingKey}, settings, Options{})

	_, err := answerer.Answer(context.Background(), sess, capitals)

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 1, settings.opened)
	assert.Zero(t, asker.Calls())
	assert.False(t, sess.Busy(), "busy flag must be released")
}

func TestAnswer_NoMatch(t *testing.T) {
	actions := &recordingActions{}
	answerer := newTestAnswerer(&fakeAsker{reply: "Berlin"}, fakeKeys{key: "sk"}, &fakeSettings{}, Options{AutoClick: true})

	outcome, err := answerer.Answer(context.Background(), NewSession(actions), capitals)

	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, -1, outcome.Index)
	assert.Equal(t, "Berlin", outcome.Reply)
	assert.Equal(t, []event{{"clear", -1}}, actions.Events())
}

func TestAnswer_AskErrorReleasesBusy(t *testing.T) {
	cause := errors.New("connection refused")
	sess := NewSession(nil)
	answerer := newTestAnswerer(&fakeAsker{err: cause}, fakeKeys{key: "sk"}, &fakeSettings{}, Options{})

	_, err := answerer.Answer(context.Background(), sess, capitals)

	assert.ErrorIs(t, err, cause)
	assert.False(t, sess.Busy())
}

func TestAnswer_AmbiguousUsesFirst(t *testing.T) {
	answerer := newTestAnswerer(&fakeAsker{reply: "paris"}, fakeKeys{key: "sk"}, &fakeSettings{}, Options{})

	outcome, err := answerer.Answer(context.Background(), NewSession(nil), Question{Text: "Q", Options: []string{"Rome", "Paris!", "PARIS"}})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Index)
	assert.True(t, outcome.Ambiguous)
}

func TestAnswer_ConcurrentCallIsSuppressed(t *testing.T) {
	asker := &fakeAsker{
		reply:   "Paris",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	sess := NewSession(nil)
	answerer := newTestAnswerer(asker, fakeKeys{key: "sk"}, &fakeSettings{}, Options{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := answerer.Answer(context.Background(), sess, capitals)
		firstDone <- err
	}()
	<-asker.started
	assert.True(t, sess.Busy())

	_, err := answerer.Answer(context.Background(), sess, capitals)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, asker.Calls(), "second call must not reach the model")

	close(asker.release)
	require.NoError(t, <-firstDone)
	assert.False(t, sess.Busy())

	_, err = answerer.Answer(context.Background(), sess, capitals)
	require.NoError(t, err)
	assert.Equal(t, 2, asker.Calls())
}

func TestHandler_SkipsRepeatedQuestions(t *testing.T) {
	actions := &recordingActions{}
	asker := &fakeAsker{reply: "Paris"}
	sess := NewSession(actions)
	handler := newTestAnswerer(asker, fakeKeys{key: "sk"}, &fakeSettings{}, Options{}).Handler(sess)
	ctx := context.Background()

	handler.OnContentChanged(ctx, page.Snapshot{Question: "  ", Options: []string{"Paris"}})
	handler.OnContentChanged(ctx, page.Snapshot{Question: "Q1", Options: []string{"Paris"}})
	handler.OnContentChanged(ctx, page.Snapshot{Question: "Q1 ", Options: []string{"Paris"}})
	assert.Equal(t, 1, asker.Calls())
	assert.Equal(t, "Q1", sess.LastSeen())

	handler.OnContentChanged(ctx, page.Snapshot{Question: "Q2", Options: []string{"Paris"}})
	assert.Equal(t, 2, asker.Calls())
}

func TestHandler_FailuresAreNotRetried(t *testing.T) {
	asker := &fakeAsker{reply: "nothing useful"}
	sess := NewSession(nil)
	handler := newTestAnswerer(asker, fakeKeys{key: "sk"}, &fakeSettings{}, Options{}).Handler(sess)

	snap := page.Snapshot{Question: "Q1", Options: []string{"Paris"}}
	handler.OnContentChanged(context.Background(), snap)
	handler.OnContentChanged(context.Background(), snap)

	assert.Equal(t, 1, asker.Calls())
}

func TestSession_Observe(t *testing.T) {
	sess := NewSession(nil)

	assert.True(t, sess.Observe("a"))
	assert.False(t, sess.Observe("a"))
	assert.True(t, sess.Observe("b"))
	assert.True(t, sess.Observe("a"))
}

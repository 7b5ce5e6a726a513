package jobs_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/indepthg/gita-qa/internal/jobs"
	"github.com/indepthg/gita-qa/internal/qa"
	qamocks "github.com/indepthg/gita-qa/internal/qa/mocks"
	"github.com/indepthg/gita-qa/internal/storage"
	"github.com/indepthg/gita-qa/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// waitForFinish polls until the job leaves the running state.
func waitForFinish(t *testing.T, r *jobs.Runner) jobs.Status {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		st := r.Status()
		if st.State != jobs.StateRunning {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not finish in time")
	return jobs.Status{}
}

func controlRow(question string, refs ...qa.VerseRef) jobs.ControlRow {
	return jobs.ControlRow{
		QuestionText: question,
		MicroTopicID: 1,
		Style:        "doctrinal",
		Whitelist:    refs,
	}
}

func TestRunner_RegeneratesAllTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	canon := mocks.NewMockCanonicalStore(ctrl)
	gen := qamocks.NewMockGenerator(ctrl)

	rec := storage.VerseRecord{Chapter: 2, Verse: 55, Commentary2: "Steady wisdom explained at length."}
	verses.EXPECT().GetByRef(gomock.Any(), 2, 55).Return(&rec, nil)

	canon.EXPECT().UpsertEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, e *storage.CanonicalEntry) error {
			if e.QuestionText != "What is sthita prajna?" || e.Source != "canonical" {
				t.Errorf("unexpected entry: %+v", e)
			}
			e.ID = 11
			return nil
		})
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("An answer citing Chapter 2, Verse 55.", nil).Times(3)
	for _, tier := range []string{"short", "medium", "long"} {
		canon.EXPECT().UpsertAnswer(gomock.Any(), int64(11), tier, "An answer citing [2:55].").Return(nil)
	}

	r := jobs.NewRunner(verses, canon, gen, 0)
	id, err := r.Start([]jobs.ControlRow{controlRow("What is sthita prajna?", qa.VerseRef{Chapter: 2, Verse: 55})})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if id == "" {
		t.Fatal("Start() returned empty job ID")
	}

	st := waitForFinish(t, r)
	if st.State != jobs.StateCompleted {
		t.Errorf("State = %q, want completed (%s)", st.State, st.Message)
	}
	if st.Processed != 1 || st.Total != 1 || st.Errors != 0 {
		t.Errorf("status = %+v", st)
	}
	if st.ID != id {
		t.Errorf("status ID = %q, want %q", st.ID, id)
	}
}

func TestRunner_SingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	canon := mocks.NewMockCanonicalStore(ctrl)
	gen := qamocks.NewMockGenerator(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	verses.EXPECT().GetByRef(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _, _ any) (*storage.VerseRecord, error) {
			close(started)
			<-release
			return nil, storage.ErrNotFound
		})

	r := jobs.NewRunner(verses, canon, gen, 0)
	if _, err := r.Start([]jobs.ControlRow{controlRow("q", qa.VerseRef{Chapter: 1, Verse: 1})}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-started

	if _, err := r.Start(nil); err != jobs.ErrAlreadyRunning {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
	close(release)

	st := waitForFinish(t, r)
	// The lone row had no usable context, so the run completes with one error.
	if st.State != jobs.StateCompleted || st.Errors != 1 {
		t.Errorf("status = %+v", st)
	}

	// A finished runner accepts a new job.
	verses.EXPECT().GetByRef(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound).AnyTimes()
	if _, err := r.Start([]jobs.ControlRow{controlRow("q2", qa.VerseRef{Chapter: 1, Verse: 2})}); err != nil {
		t.Errorf("Start() after completion error = %v", err)
	}
	waitForFinish(t, r)
}

func TestRunner_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	canon := mocks.NewMockCanonicalStore(ctrl)
	gen := qamocks.NewMockGenerator(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	rec := storage.VerseRecord{Chapter: 2, Verse: 55, Translation: "text"}
	verses.EXPECT().GetByRef(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _, _ any) (*storage.VerseRecord, error) {
			select {
			case <-started:
			default:
				close(started)
			}
			<-release
			return &rec, nil
		}).AnyTimes()
	canon.EXPECT().UpsertEntry(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("a [2:55] b [2:56]", nil).AnyTimes()
	canon.EXPECT().UpsertAnswer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	rows := []jobs.ControlRow{
		controlRow("q1", qa.VerseRef{Chapter: 2, Verse: 55}),
		controlRow("q2", qa.VerseRef{Chapter: 2, Verse: 56}),
	}
	r := jobs.NewRunner(verses, canon, gen, 0)
	if _, err := r.Start(rows); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-started

	if !r.Cancel() {
		t.Error("Cancel() = false, want true while running")
	}
	close(release)

	st := waitForFinish(t, r)
	if st.State != jobs.StateCancelled {
		t.Errorf("State = %q, want cancelled", st.State)
	}
	if r.Cancel() {
		t.Error("Cancel() = true after finish, want false")
	}
}

package feedback

import (
	"context"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	"github.com/thelab/fan-chat/backend/internal/service/sheets"
)

type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) Open(ctx context.Context, url, worksheet string) (sheets.Worksheet, error) {
	args := m.Called(ctx, url, worksheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(sheets.Worksheet), args.Error(1)
}

type mockWorksheet struct {
	mock.Mock
}

func (m *mockWorksheet) AppendRow(ctx context.Context, values []string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *mockWorksheet) Rows(ctx context.Context) ([][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

var target = Target{URL: "https://docs.google.com/spreadsheets/d/sheet-id/edit", Worksheet: "Sheet1"}

func TestSubmitAppendsRow(t *testing.T) {
	ws := &mockWorksheet{}
	opener := &mockOpener{}
	opener.On("Open", mock.Anything, target.URL, target.Worksheet).Return(ws, nil).Once()

	var appended []string
	ws.On("AppendRow", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).([]string)
	}).Return(nil).Once()

	recorder := NewRecorder(opener, target, false)
	before := time.Now()
	entry, err := recorder.Submit(context.Background(), "great tool", "😀 Happy")
	after := time.Now()
	require.NoError(t, err)

	require.Len(t, appended, 4)
	assert.Equal(t, "great tool", appended[0])
	assert.Equal(t, "😀", appended[1])
	assert.Equal(t, before.Format("2006-01-02"), appended[2])

	stamped, err := time.ParseInLocation("2006-01-02 15:04:05", appended[2]+" "+appended[3], time.Local)
	require.NoError(t, err)
	assert.False(t, stamped.Before(before.Truncate(time.Second)))
	assert.False(t, stamped.After(after))
	assert.Equal(t, entry.Row(), appended)

	opener.AssertExpectations(t)
	ws.AssertExpectations(t)
	ws.AssertNotCalled(t, "Rows", mock.Anything)
}

func TestSubmitUsesSubmissionClock(t *testing.T) {
	ws := &mockWorksheet{}
	opener := &mockOpener{}
	opener.On("Open", mock.Anything, target.URL, target.Worksheet).Return(ws, nil)
	ws.On("AppendRow", mock.Anything, []string{"", "😠", "2024-02-29", "23:59:58"}).Return(nil).Once()

	recorder := NewRecorder(opener, target, false)
	recorder.now = func() time.Time { return time.Date(2024, 2, 29, 23, 59, 58, 0, time.Local) }

	_, err := recorder.Submit(context.Background(), "", "😠 Angry")
	require.NoError(t, err)
	ws.AssertExpectations(t)
}

func TestSubmitMoodCodeForEveryLabel(t *testing.T) {
	for _, mood := range feedback.Moods() {
		t.Run(string(mood), func(t *testing.T) {
			ws := &mockWorksheet{}
			opener := &mockOpener{}
			opener.On("Open", mock.Anything, mock.Anything, mock.Anything).Return(ws, nil)

			first, _ := utf8.DecodeRuneInString(string(mood))
			ws.On("AppendRow", mock.Anything, mock.MatchedBy(func(row []string) bool {
				return len(row) == 4 && row[1] == string(first)
			})).Return(nil).Once()

			_, err := NewRecorder(opener, target, false).Submit(context.Background(), "text", string(mood))
			require.NoError(t, err)
			ws.AssertExpectations(t)
		})
	}
}

func TestSubmitInvalidMoodNeverOpensSheet(t *testing.T) {
	opener := &mockOpener{}
	recorder := NewRecorder(opener, target, false)

	for _, label := range []string{"", "Happy", "😀", "🤩 Thrilled"} {
		_, err := recorder.Submit(context.Background(), "text", label)
		assert.ErrorIs(t, err, feedback.ErrInvalidMood)
	}
	opener.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitOpenFailure(t *testing.T) {
	cause := errors.New("invalid_grant")
	opener := &mockOpener{}
	opener.On("Open", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

	_, err := NewRecorder(opener, target, false).Submit(context.Background(), "text", "😐 Neutral")

	var recErr *RecorderError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "open", recErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestSubmitAppendFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	ws := &mockWorksheet{}
	opener := &mockOpener{}
	opener.On("Open", mock.Anything, mock.Anything, mock.Anything).Return(ws, nil)
	ws.On("AppendRow", mock.Anything, mock.Anything).Return(cause).Once()

	_, err := NewRecorder(opener, target, true).Submit(context.Background(), "text", "😒 Dissatisfied")

	var recErr *RecorderError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "append", recErr.Op)
	ws.AssertNotCalled(t, "Rows", mock.Anything)
}

func TestSubmitReadBackFailureIsNotFatal(t *testing.T) {
	ws := &mockWorksheet{}
	opener := &mockOpener{}
	opener.On("Open", mock.Anything, mock.Anything, mock.Anything).Return(ws, nil)
	ws.On("AppendRow", mock.Anything, mock.Anything).Return(nil).Once()
	ws.On("Rows", mock.Anything).Return(nil, errors.New("read denied")).Once()

	_, err := NewRecorder(opener, target, true).Submit(context.Background(), "text", "😀 Happy")
	require.NoError(t, err)
	ws.AssertExpectations(t)
}

package service

import (
	"fmt"
	"testing"

	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueRejectedBelowThreshold(t *testing.T) {
	env := newTestEnv(t)

	// 2 of 3 lessons is 66%, under the 80% threshold.
	env.record(t, "lesson-1", true, 60, nil)
	env.record(t, "lesson-2", true, 90, nil)

	_, err := env.certs.Issue(env.user.ID, env.module.ID)
	assert.ErrorIs(t, err, util.ErrModuleNotCompleted)
}

func TestIssueSucceedsOnLessonRatioAlone(t *testing.T) {
	env := newTestEnv(t)

	// All lessons done, quiz untouched: the gate only looks at lessons.
	env.record(t, "lesson-1", true, 60, nil)
	env.record(t, "lesson-2", true, 90, nil)
	env.record(t, "lesson-3", true, 45, nil)

	cert, err := env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)

	assert.Equal(t, env.user.Username, cert.UserName)
	assert.Equal(t, env.module.Title, cert.ModuleTitle)
	assert.Equal(t, 195, cert.TimeSpent)
	assert.Contains(t, cert.Code, "CERT-")
	assert.Contains(t, cert.Code, fmt.Sprintf("-%d-%d", env.user.ID, env.module.ID))
}

func TestIssueDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)

	env.record(t, "lesson-1", true, 10, nil)
	env.record(t, "lesson-2", true, 10, nil)
	env.record(t, "lesson-3", true, 10, nil)

	_, err := env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)

	_, err = env.certs.Issue(env.user.ID, env.module.ID)
	assert.ErrorIs(t, err, util.ErrCertificateIssued)

	var count int64
	env.db.Model(&model.Certificate{}).
		Where("user_id = ? AND module_id = ?", env.user.ID, env.module.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIssueUnknownUserOrModule(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.certs.Issue(9999, env.module.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = env.certs.Issue(env.user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestIssueSnapshotsCompletionDate(t *testing.T) {
	env := newTestEnv(t)

	env.record(t, "lesson-1", true, 10, nil)
	env.record(t, "lesson-2", true, 10, nil)
	env.record(t, "lesson-3", true, 10, nil)
	env.record(t, "quiz-1", true, 10, intPtr(95))

	view, err := env.progress.GetModuleProgress(env.user.ID, env.module.ID)
	require.NoError(t, err)
	require.NotNil(t, view.ModuleProgress.CompletionDate)

	cert, err := env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ModuleProgress.CompletionDate.UnixNano(), cert.CompletionDate.UnixNano())
}

func TestVerifyCertificate(t *testing.T) {
	env := newTestEnv(t)

	env.record(t, "lesson-1", true, 10, nil)
	env.record(t, "lesson-2", true, 10, nil)
	env.record(t, "lesson-3", true, 10, nil)

	issued, err := env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)

	found, err := env.certs.Verify(issued.Code)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)

	_, err = env.certs.Verify("CERT-0-0-0")
	assert.ErrorIs(t, err, util.ErrCertificateNotFound)
}

func TestResetKeepsCertificate(t *testing.T) {
	env := newTestEnv(t)

	env.record(t, "lesson-1", true, 10, nil)
	env.record(t, "lesson-2", true, 10, nil)
	env.record(t, "lesson-3", true, 10, nil)

	cert, err := env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)

	_, err = env.progress.Reset(env.user.ID, env.module.ID)
	require.NoError(t, err)

	found, err := env.certs.Verify(cert.Code)
	require.NoError(t, err)
	assert.Equal(t, cert.Code, found.Code)
}

func TestListForUser(t *testing.T) {
	env := newTestEnv(t)

	certs, err := env.certs.ListForUser(env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, certs)

	env.record(t, "lesson-1", true, 10, nil)
	env.record(t, "lesson-2", true, 10, nil)
	env.record(t, "lesson-3", true, 10, nil)

	_, err = env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)

	certs, err = env.certs.ListForUser(env.user.ID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/facekeeper/internal/common"
	"github.com/dmitrijs2005/facekeeper/internal/models"
)

func TestSignInService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry short-circuits before any descriptor load", func(t *testing.T) {
		e := newEnv(t)
		counting := &countingArtifacts{Store: e.artifacts}

		svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: uniformDescriptor(0)}, counting)
		_, _, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
		require.ErrorIs(t, err, common.ErrNoRegisteredUsers)
		assert.Zero(t, counting.loads)
	})

	t.Run("no face detected", func(t *testing.T) {
		e := newEnv(t)
		e.registerUser(t, "ada@example.com", uniformDescriptor(0))

		svc := e.signin(&fakeLocator{found: false}, &fakeExtractor{d: uniformDescriptor(0)}, nil)
		_, _, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
		require.ErrorIs(t, err, common.ErrNoFaceDetected)
	})

	t.Run("matching face accepted", func(t *testing.T) {
		e := newEnv(t)
		rec := e.registerUser(t, "ada@example.com", uniformDescriptor(0.25))

		svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: uniformDescriptor(0.25)}, nil)
		got, sim, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
		require.NoError(t, err)

		assert.Equal(t, rec.Email, got.Email)
		assert.InDelta(t, 1.0, sim, 1e-6)

		sess, err := e.sessions.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, rec.Email, sess.SubjectEmail)

		// the full matched record was stashed for display
		users := NewUserService(e.users, e.storage)
		recognized, err := users.Recognized(ctx)
		require.NoError(t, err)
		assert.Equal(t, rec.Email, recognized.Email)
		assert.Equal(t, rec.FullName, recognized.FullName)
	})

	t.Run("dissimilar face rejected without session", func(t *testing.T) {
		e := newEnv(t)
		e.registerUser(t, "ada@example.com", uniformDescriptor(0.5))

		// 0.1 per element apart is well past the distance threshold
		svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: uniformDescriptor(0.6)}, nil)
		_, sim, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
		require.ErrorIs(t, err, common.ErrNoMatch)
		assert.Less(t, sim, 0.6)

		sess, err := e.sessions.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("best match wins regardless of position", func(t *testing.T) {
		for pos := 0; pos < 3; pos++ {
			t.Run(fmt.Sprintf("match at %d", pos), func(t *testing.T) {
				e := newEnv(t)

				for i := 0; i < 3; i++ {
					v := float32(0.5) // far from the probe
					if i == pos {
						v = 0 // identical to the probe
					}
					e.registerUser(t, fmt.Sprintf("user%d@example.com", i), uniformDescriptor(v))
				}

				svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: uniformDescriptor(0)}, nil)
				got, sim, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
				require.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("user%d@example.com", pos), got.Email)
				assert.InDelta(t, 1.0, sim, 1e-6)
			})
		}
	})

	t.Run("unreadable descriptor does not block the others", func(t *testing.T) {
		e := newEnv(t)
		broken := e.registerUser(t, "broken@example.com", uniformDescriptor(0))
		e.registerUser(t, "ada@example.com", uniformDescriptor(0))

		require.NoError(t, os.WriteFile(broken.FaceDescriptorPath, []byte("not a descriptor"), 0o600))

		svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: uniformDescriptor(0)}, nil)
		got, _, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", got.Email)
	})

	t.Run("all descriptors unreadable rejects", func(t *testing.T) {
		e := newEnv(t)
		rec := e.registerUser(t, "ada@example.com", uniformDescriptor(0))
		require.NoError(t, os.Remove(rec.FaceDescriptorPath))

		svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: uniformDescriptor(0)}, nil)
		_, sim, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
		require.ErrorIs(t, err, common.ErrNoMatch)
		assert.Zero(t, sim)
	})
}

func TestRegisterThenSignIn(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.stashSignup(t, models.SignupDetails{
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		Telephone: "5551234",
	})

	d := uniformDescriptor(0.33)

	reg := e.registration(&fakeLocator{found: true}, &fakeExtractor{d: d})
	rec, err := reg.Register(ctx, &fakeFrames{img: testFrame()})
	require.NoError(t, err)

	svc := e.signin(&fakeLocator{found: true}, &fakeExtractor{d: d}, nil)
	got, sim, err := svc.SignIn(ctx, &fakeFrames{img: testFrame()})
	require.NoError(t, err)
	assert.Equal(t, rec.Email, got.Email)
	assert.InDelta(t, 1.0, sim, 1e-6)
}

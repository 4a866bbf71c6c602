package factservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStub_SuccessAndFailure(t *testing.T) {
	stub := NewStub().
		Succeed("42", "trivia", "42 is a boring number").
		Fail("x", "math", "Invalid URL")

	fact, err := stub.Fetch(context.Background(), "42", "trivia")
	require.NoError(t, err)
	assert.Equal(t, "42 is a boring number", fact)

	_, err = stub.Fetch(context.Background(), "x", "math")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Invalid URL", fe.Message)

	_, err = stub.Fetch(context.Background(), "1", "year")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "no stubbed response", fe.Message)

	assert.Equal(t, []Call{{"42", "trivia"}, {"x", "math"}, {"1", "year"}}, stub.Calls())
}

func TestStub_Fallbacks(t *testing.T) {
	stub := NewStub().SucceedAll("any").Succeed("1", "math", "one")

	fact, err := stub.Fetch(context.Background(), "1", "math")
	require.NoError(t, err)
	assert.Equal(t, "one", fact)

	fact, err = stub.Fetch(context.Background(), "2", "math")
	require.NoError(t, err)
	assert.Equal(t, "any", fact)

	stub.FailAll("down")
	_, err = stub.Fetch(context.Background(), "2", "math")
	assert.EqualError(t, err, "down")
}

func TestStub_Block(t *testing.T) {
	stub := NewStub().SucceedAll("late")
	stub.Block = make(chan struct{})

	done := make(chan string, 1)
	go func() {
		fact, _ := stub.Fetch(context.Background(), "1", "trivia")
		done <- fact
	}()

	select {
	case <-done:
		t.Fatal("fetch returned before release")
	case <-time.After(20 * time.Millisecond):
	}

	close(stub.Block)
	assert.Equal(t, "late", <-done)
}

func TestStub_BlockHonorsContext(t *testing.T) {
	stub := NewStub().SucceedAll("never")
	stub.Block = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stub.Fetch(ctx, "1", "trivia")
	assert.EqualError(t, err, "The request was cancelled.")
}

func TestFunc(t *testing.T) {
	var svc Service = Func(func(_ context.Context, n, c string) (string, error) {
		return n + "/" + c, nil
	})
	fact, err := svc.Fetch(context.Background(), "7", "year")
	require.NoError(t, err)
	assert.Equal(t, "7/year", fact)
}

package apiclient

import (
	"context"
	"sync"

	"github.com/mergington/activities/pkg/activities"
)

// MockCall records one call made against a MockClient.
type MockCall struct {
	Method   string
	Activity string
	Email    string
}

// MockClient is a scriptable ActivitiesAPI. It never changes its catalog;
// tests set what each call returns.
type MockClient struct {
	mu         sync.Mutex
	catalog    *activities.Catalog
	fetchErr   error
	mutateErr  error
	message    string
	calls      []MockCall
	beforeCall func(call MockCall)
}

func NewMockClient(catalog *activities.Catalog) *MockClient {
	return &MockClient{catalog: catalog}
}

func (c *MockClient) SetCatalog(catalog *activities.Catalog) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = catalog
	return c
}

func (c *MockClient) SetFetchError(err error) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchErr = err
	return c
}

func (c *MockClient) SetMutateError(err error) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mutateErr = err
	return c
}

func (c *MockClient) SetMessage(message string) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = message
	return c
}

// OnCall registers f to run at the start of every call, before the lock is
// taken. Tests use it to block or reorder calls.
func (c *MockClient) OnCall(f func(call MockCall)) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beforeCall = f
	return c
}

func (c *MockClient) Calls() []MockCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MockCall(nil), c.calls...)
}

func (c *MockClient) CallsTo(method string) int {
	count := 0
	for _, call := range c.Calls() {
		if call.Method == method {
			count++
		}
	}

	return count
}

func (c *MockClient) GetActivities(_ context.Context) (*activities.Catalog, error) {
	c.record(MockCall{Method: "GetActivities"})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}

	return c.catalog, nil
}

func (c *MockClient) Signup(_ context.Context, activity, email string) (string, error) {
	return c.mutate(MockCall{Method: "Signup", Activity: activity, Email: email})
}

func (c *MockClient) Unregister(_ context.Context, activity, email string) (string, error) {
	return c.mutate(MockCall{Method: "Unregister", Activity: activity, Email: email})
}

func (c *MockClient) mutate(call MockCall) (string, error) {
	c.record(call)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mutateErr != nil {
		return "", c.mutateErr
	}

	return c.message, nil
}

func (c *MockClient) record(call MockCall) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	beforeCall := c.beforeCall
	c.mu.Unlock()

	if beforeCall != nil {
		beforeCall(call)
	}
}

package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// fakeGateway answers FailJob and ThrowError; every other gateway call panics.
type fakeGateway struct {
	pb.GatewayClient
	err    error
	failed []*pb.FailJobRequest
	thrown []*pb.ThrowErrorRequest
}

func (g *fakeGateway) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.failed = append(g.failed, in)
	return &pb.FailJobResponse{}, g.err
}

func (g *fakeGateway) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.thrown = append(g.thrown, in)
	return &pb.ThrowErrorResponse{}, g.err
}

func noRetry(context.Context, error) bool { return false }

type fakeJobClient struct {
	gateway *fakeGateway
}

func (c fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gateway, noRetry)
}

func (c fakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gateway, noRetry)
}

func (c fakeJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gateway, noRetry)
}

type logEntry struct {
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{msg: msg, fields: fields})
}

func (l *recordingLogger) find(msg string) *logEntry {
	for i := range l.entries {
		if l.entries[i].msg == msg {
			return &l.entries[i]
		}
	}
	return nil
}

func activatedJob(key int64, retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: key, Type: "search-locations", Retries: retries}}
}

func TestHandleJobError_TransientErrorFailsWithBoundedRetries(t *testing.T) {
	gateway := &fakeGateway{}
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	h.HandleJobError(context.Background(), fakeJobClient{gateway}, activatedJob(7, 2),
		NewUpstreamRequestFailedError("getLocationHierarchy", fmt.Errorf("502")))

	require.Len(t, gateway.failed, 1)
	assert.Empty(t, gateway.thrown)
	req := gateway.failed[0]
	assert.Equal(t, int64(7), req.JobKey)
	assert.Equal(t, int32(2), req.Retries)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(req.Variables), &vars))
	assert.Equal(t, "UPSTREAM_REQUEST_FAILED", vars["errorCode"])
	assert.Equal(t, "getLocationHierarchy", vars["operation"])

	assert.NotNil(t, log.find("Job failed"))
	assert.Nil(t, log.find("Failed to report job error to broker"))
}

func TestHandleJobError_BusinessErrorIsThrown(t *testing.T) {
	gateway := &fakeGateway{}
	h := NewErrorHandler(&recordingLogger{})

	h.HandleJobError(context.Background(), fakeJobClient{gateway}, activatedJob(8, 3), NewLocationNotFoundError("Room 9"))

	assert.Empty(t, gateway.failed)
	require.Len(t, gateway.thrown, 1)
	assert.Equal(t, "LOCATION_NOT_FOUND", gateway.thrown[0].ErrorCode)
	assert.Contains(t, gateway.thrown[0].Variables, `"term":"Room 9"`)
}

func TestHandleJobError_NoRetriesLeftIsThrown(t *testing.T) {
	gateway := &fakeGateway{}
	h := NewErrorHandler(&recordingLogger{})

	h.HandleJobError(context.Background(), fakeJobClient{gateway}, activatedJob(9, 0),
		NewUpstreamRequestFailedError("checkAvailability", fmt.Errorf("503")))

	assert.Empty(t, gateway.failed)
	require.Len(t, gateway.thrown, 1)
	assert.Equal(t, "UPSTREAM_REQUEST_FAILED", gateway.thrown[0].ErrorCode)
}

func TestHandleJobError_LogsBrokerRejection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		command string
	}{
		{"fail job", NewUpstreamRequestFailedError("getLocationHierarchy", fmt.Errorf("502")), "fail-job"},
		{"throw error", NewInvalidInputError("dateFrom is required"), "throw-error"},
		{"plain error", fmt.Errorf("boom"), "throw-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{err: fmt.Errorf("rpc error: code = NotFound desc = job not found")}
			log := &recordingLogger{}
			h := NewErrorHandler(log)

			h.HandleJobError(context.Background(), fakeJobClient{gateway}, activatedJob(10, 3), tt.err)

			entry := log.find("Failed to report job error to broker")
			require.NotNil(t, entry, "entries: %v", log.entries)
			assert.Equal(t, tt.command, entry.fields["command"])
			assert.Equal(t, int64(10), entry.fields["jobKey"])
			assert.Contains(t, entry.fields["error"], "job not found")
		})
	}
}

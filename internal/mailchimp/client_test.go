package mailchimp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		APIKey:     "testkey-us21",
		AudienceID: "aud123",
		BaseURL:    srv.URL,
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{AudienceID: "aud"})
	assert.Error(t, err, "missing API key")

	_, err = New(Config{APIKey: "key-us21"})
	assert.Error(t, err, "missing audience ID")

	_, err = New(Config{APIKey: "noregion", AudienceID: "aud"})
	assert.Error(t, err, "key without region suffix")

	c, err := New(Config{APIKey: "abc-us21", AudienceID: "aud"})
	require.NoError(t, err)
	assert.Equal(t, "https://us21.api.mailchimp.com", c.baseURL)
}

func TestMemberID(t *testing.T) {
	// md5("urist.mcvankab@freddiesjokes.com"), the provider's own
	// documentation example.
	assert.Equal(t, "62eeb292278cc15f5817cb78f7790b08", MemberID("Urist.McVankab@freddiesjokes.com"))
	assert.Equal(t, MemberID("A@B.COM"), MemberID("a@b.com"), "identifier is case-insensitive")
}

func TestUpsertCreate(t *testing.T) {
	var gotPath string
	var gotBody memberPayload
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"abc"}`))
	}))

	res, err := client.Upsert(context.Background(), Contact{
		Email: "a@b.com",
		Tags:  []string{"booking"},
	}, "discovery-call")
	require.NoError(t, err)

	assert.False(t, res.Updated)
	assert.Equal(t, "/3.0/lists/aud123/members", gotPath)
	assert.Equal(t, "a@b.com", gotBody.EmailAddress)
	assert.Equal(t, "subscribed", gotBody.Status)
	assert.Equal(t, []string{"discovery-call", "booking"}, gotBody.Tags,
		"form type is prepended ahead of the contact's own tags")
	assert.Nil(t, gotBody.MergeFields, "absent optional fields must not be sent")
}

func TestUpsertMergeFieldsOnlyWhenPresent(t *testing.T) {
	var gotBody memberPayload
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	}))

	_, err := client.Upsert(context.Background(), Contact{
		Email:     "a@b.com",
		FirstName: "Amina",
		Phone:     "+254700000000",
		MergeFields: map[string]string{
			"TIMEFRAME": "immediately",
		},
	}, "contact")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"FNAME":     "Amina",
		"PHONE":     "+254700000000",
		"TIMEFRAME": "immediately",
	}, gotBody.MergeFields)
	_, hasLast := gotBody.MergeFields["LNAME"]
	assert.False(t, hasLast, "empty last name must not appear")
}

func TestUpsertConflictFallsBackToUpdate(t *testing.T) {
	var patchPath string
	var patchBody memberPayload
	patches := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"title":"Member Exists","detail":"a@b.com is already a list member"}`))
		case http.MethodPatch:
			patches++
			patchPath = r.URL.Path
			json.NewDecoder(r.Body).Decode(&patchBody)
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))

	res, err := client.Upsert(context.Background(), Contact{Email: "A@B.com", Company: "HLCC"}, "booking")
	require.NoError(t, err)

	assert.Equal(t, 1, patches, "exactly one follow-up PATCH")
	assert.Equal(t, "/3.0/lists/aud123/members/"+MemberID("a@b.com"), patchPath)
	assert.True(t, res.Updated)
	assert.Contains(t, res.Message, "updated")
	assert.Empty(t, patchBody.EmailAddress, "update body omits email_address")
	assert.Equal(t, "subscribed", patchBody.Status)
	assert.Equal(t, map[string]string{"COMPANY": "HLCC"}, patchBody.MergeFields)
}

func TestUpsertProviderErrorSurfacesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title":"Invalid Resource","detail":"Please provide a valid email address."}`))
	}))

	_, err := client.Upsert(context.Background(), Contact{Email: "bad"}, "contact")
	require.Error(t, err)
	assert.False(t, IsConflict(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "valid email address")
}

func TestUpsertUpdateFailureIsOverallFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"title":"Member Exists"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"title":"Server Error"}`))
	}))

	_, err := client.Upsert(context.Background(), Contact{Email: "a@b.com"}, "contact")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestUpsertNonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := client.Upsert(context.Background(), Contact{Email: "a@b.com"}, "contact")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAPIErrorMessageFallsBackToStatus(t *testing.T) {
	err := &APIError{StatusCode: 503}
	assert.Equal(t, "mailchimp: HTTP 503", err.Error())
}

package validation

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"comunidad/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, body string, dst any) *Errors {
	t.Helper()
	errs := New()
	if errs.Decode(strings.NewReader(body), dst) {
		errs.Struct(dst)
	}
	return errs
}

func TestParticipant_Valid(t *testing.T) {
	var req types.RegisterParticipantRequest
	errs := check(t, `{"name":"Ana","email":"ana@example.com","age":0,"city":"Quito"}`, &req)

	assert.True(t, errs.Empty())
	require.NotNil(t, req.Age)
	assert.Equal(t, 0, *req.Age)
	assert.Equal(t, "Quito", *req.City)
	assert.Nil(t, req.Phone)
}

func TestParticipant_ReportsEveryField(t *testing.T) {
	var req types.RegisterParticipantRequest
	errs := check(t, `{"name":"","email":"not-an-email","age":121}`, &req)

	assert.False(t, errs.Empty())
	assert.Empty(t, errs.FormErrors)
	assert.Equal(t, []string{"Required"}, errs.FieldErrors["name"])
	assert.Equal(t, []string{"Invalid email"}, errs.FieldErrors["email"])
	assert.Equal(t, []string{"Number must be less than or equal to 120"}, errs.FieldErrors["age"])
}

func TestParticipant_NegativeAge(t *testing.T) {
	var req types.RegisterParticipantRequest
	errs := check(t, `{"name":"Ana","email":"ana@example.com","age":-1}`, &req)

	assert.Equal(t, []string{"Number must be greater than or equal to 0"}, errs.FieldErrors["age"])
	assert.Len(t, errs.FieldErrors, 1)
}

func TestEmptyBody_RequiredFields(t *testing.T) {
	var req types.CreateNeedRequest
	errs := check(t, ``, &req)

	assert.Empty(t, errs.FormErrors)
	assert.Equal(t, []string{"Required"}, errs.FieldErrors["email"])
	assert.Equal(t, []string{"Required"}, errs.FieldErrors["questionId"])
	assert.Equal(t, []string{"Required"}, errs.FieldErrors["description"])
	assert.NotContains(t, errs.FieldErrors, "categorySlug")
}

func TestNeed_TypeMismatchReportedOnce(t *testing.T) {
	var req types.CreateNeedRequest
	errs := check(t, `{"email":"a@x.com","questionId":"1","description":"ok"}`, &req)

	require.Len(t, errs.FieldErrors, 1)
	require.Len(t, errs.FieldErrors["questionId"], 1)
	assert.Equal(t, "Expected integer, received string", errs.FieldErrors["questionId"][0])
}

func TestNeed_EmptySlugAndLongDescription(t *testing.T) {
	var req types.CreateNeedRequest
	body, err := json.Marshal(map[string]any{
		"email":        "a@x.com",
		"questionId":   1,
		"categorySlug": "",
		"description":  strings.Repeat("a", 1001),
	})
	require.NoError(t, err)

	errs := check(t, string(body), &req)
	assert.Equal(t, []string{"String must contain at least 1 character(s)"}, errs.FieldErrors["categorySlug"])
	assert.Equal(t, []string{"String must contain at most 1000 character(s)"}, errs.FieldErrors["description"])
}

func TestNeed_DescriptionCountsCharacters(t *testing.T) {
	var req types.CreateNeedRequest
	body, err := json.Marshal(map[string]any{
		"email":       "a@x.com",
		"questionId":  2,
		"description": strings.Repeat("ñ", 1000),
	})
	require.NoError(t, err)

	assert.True(t, check(t, string(body), &req).Empty())
}

func TestMalformedJSON(t *testing.T) {
	var req types.CreateNeedRequest
	errs := New()

	assert.False(t, errs.Decode(strings.NewReader(`{"email":`), &req))
	assert.Equal(t, []string{"Malformed JSON body"}, errs.FormErrors)
	assert.Empty(t, errs.FieldErrors)
}

func TestNonObjectBody(t *testing.T) {
	var req types.CreateNeedRequest
	errs := New()

	assert.False(t, errs.Decode(strings.NewReader(`[1,2]`), &req))
	require.Len(t, errs.FormErrors, 1)
	assert.Contains(t, errs.FormErrors[0], "Expected object")
}

func TestBodyTooLarge(t *testing.T) {
	var req types.CreateNeedRequest
	rec := httptest.NewRecorder()
	body := http.MaxBytesReader(rec, io.NopCloser(strings.NewReader(`{"description":"`+strings.Repeat("x", 64)+`"}`)), 16)

	errs := New()
	assert.False(t, errs.Decode(body, &req))
	assert.Equal(t, []string{"Request body too large"}, errs.FormErrors)
}

func TestErrorsJSONShape(t *testing.T) {
	errs := New()
	data, err := json.Marshal(errs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"formErrors":[],"fieldErrors":{}}`, string(data))

	errs.AddField("email", "Required")
	assert.Contains(t, errs.Error(), "email: Required")
}

func TestParticipant_EveryTypeMismatchReported(t *testing.T) {
	var req types.RegisterParticipantRequest
	errs := check(t, `{"name":5,"email":"a@x.com","age":"x","city":true}`, &req)

	assert.Empty(t, errs.FormErrors)
	assert.Equal(t, map[string][]string{
		"name": {"Expected string, received number"},
		"age":  {"Expected integer, received string"},
		"city": {"Expected string, received boolean"},
	}, errs.FieldErrors)
}

func TestNeed_MismatchesAndRulesTogether(t *testing.T) {
	var req types.CreateNeedRequest
	errs := check(t, `{"email":5,"questionId":"1","description":""}`, &req)

	assert.Equal(t, map[string][]string{
		"email":       {"Expected string, received number"},
		"questionId":  {"Expected integer, received string"},
		"description": {"Required"},
	}, errs.FieldErrors)
}

func TestExplicitNullRejected(t *testing.T) {
	var participant types.RegisterParticipantRequest
	errs := check(t, `{"name":"Ana","email":"a@x.com","age":null,"phone":null}`, &participant)

	assert.Equal(t, map[string][]string{
		"age":   {"Expected integer, received null"},
		"phone": {"Expected string, received null"},
	}, errs.FieldErrors)

	var need types.CreateNeedRequest
	errs = check(t, `{"email":"a@x.com","questionId":2,"categorySlug":null,"description":"ok"}`, &need)
	assert.Equal(t, []string{"Expected string, received null"}, errs.FieldErrors["categorySlug"])
}

func TestTrailingDataRejected(t *testing.T) {
	for _, body := range []string{
		`{"name":"A","email":"a@x.com"} trailing`,
		`{"name":"A","email":"a@x.com"}{}`,
	} {
		var req types.RegisterParticipantRequest
		errs := New()

		assert.False(t, errs.Decode(strings.NewReader(body), &req), body)
		assert.Equal(t, []string{"Malformed JSON body"}, errs.FormErrors, body)
	}

	var req types.RegisterParticipantRequest
	assert.True(t, check(t, "{\"name\":\"A\",\"email\":\"a@x.com\"}\n  \n", &req).Empty())
}

func TestNullBody(t *testing.T) {
	var req types.CreateNeedRequest
	errs := New()

	assert.False(t, errs.Decode(strings.NewReader(`null`), &req))
	assert.Equal(t, []string{"Expected object, received null"}, errs.FormErrors)
}

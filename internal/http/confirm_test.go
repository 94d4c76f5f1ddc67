package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository/mocks"
	echo "github.com/labstack/echo/v4"
	"go.uber.org/mock/gomock"
)

func doConfirm(t *testing.T, requests *mocks.MockRequestsRepository, query string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/confirm?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := confirmHandler(requests, nil)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestConfirmHandler(t *testing.T) {
	sent := &model.Request{ID: "01REQ", Kind: model.KindRoofDormer, CustomerName: "X", Status: model.StatusQuoteSent}

	t.Run("yes confirms interest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)
		requests.EXPECT().Get(gomock.Any(), "01REQ").Return(sent, nil)
		requests.EXPECT().Confirm(gomock.Any(), "01REQ", model.StatusInterestConfirmed).Return(true, nil)

		rec := doConfirm(t, requests, "id=01REQ&response=yes")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Thank you") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("no declines interest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)
		requests.EXPECT().Get(gomock.Any(), "01REQ").Return(sent, nil)
		requests.EXPECT().Confirm(gomock.Any(), "01REQ", model.StatusInterestDeclined).Return(true, nil)

		rec := doConfirm(t, requests, "id=01REQ&response=no")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("repeated click on the same link is idempotent", func(t *testing.T) {
		confirmed := &model.Request{ID: "01REQ", Kind: model.KindRoofDormer, CustomerName: "X", Status: model.StatusInterestConfirmed}

		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)
		requests.EXPECT().Get(gomock.Any(), "01REQ").Return(confirmed, nil)
		requests.EXPECT().Confirm(gomock.Any(), "01REQ", model.StatusInterestConfirmed).Return(false, nil)

		rec := doConfirm(t, requests, "id=01REQ&response=yes")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("changing the answer after a decision conflicts", func(t *testing.T) {
		confirmed := &model.Request{ID: "01REQ", Kind: model.KindRoofDormer, CustomerName: "X", Status: model.StatusInterestConfirmed}

		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)
		requests.EXPECT().Get(gomock.Any(), "01REQ").Return(confirmed, nil)
		requests.EXPECT().Confirm(gomock.Any(), "01REQ", model.StatusInterestDeclined).Return(false, nil)

		rec := doConfirm(t, requests, "id=01REQ&response=no")
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("link clicked before the quote went out", func(t *testing.T) {
		fresh := &model.Request{ID: "01REQ", Kind: model.KindRoofDormer, CustomerName: "X", Status: model.StatusNew}

		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)
		requests.EXPECT().Get(gomock.Any(), "01REQ").Return(fresh, nil)
		requests.EXPECT().Confirm(gomock.Any(), "01REQ", model.StatusInterestConfirmed).Return(false, nil)

		rec := doConfirm(t, requests, "id=01REQ&response=yes")
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "not sent yet") {
			t.Errorf("body should explain the quote was not sent yet: %s", rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "Already handled") {
			t.Error("unsent quote described as already handled")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)
		requests.EXPECT().Get(gomock.Any(), "nope").Return(nil, nil)

		rec := doConfirm(t, requests, "id=nope&response=yes")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("invalid response value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mocks.NewMockRequestsRepository(ctrl)

		rec := doConfirm(t, requests, "id=01REQ&response=maybe")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

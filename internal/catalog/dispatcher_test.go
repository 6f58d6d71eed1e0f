package catalog

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/api/apitest"
)

func newCatalog(t *testing.T, seed ...api.Vehicle) (*apitest.Server, *Controller, *Dispatcher) {
	t.Helper()
	srv := apitest.NewServer(t, seed...)
	client, err := api.New(srv.URL, "", api.WithTimeout(2*time.Second))
	require.NoError(t, err)
	ctrl := NewController(client)
	return srv, ctrl, NewDispatcher(client, ctrl)
}

func TestRefreshCachesServerFilteredCollection(t *testing.T) {
	ctx := context.Background()
	srv, ctrl, _ := newCatalog(t, fleet...)

	model, records, err := ctrl.Refresh(ctx, FilterFavorites, "")
	require.NoError(t, err)
	require.Equal(t, []int64{2}, ids(records))
	require.Equal(t, []int64{2}, ids(model.Records))
	require.Nil(t, model.Empty)
	require.Equal(t, []int64{2}, ids(ctrl.Cached()))

	model, records, err = ctrl.Refresh(ctx, FilterAll, "road")
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []int64{1, 2}, ids(model.Records))
	require.Len(t, ctrl.Cached(), 4, "cache holds the pre-search collection")

	require.Equal(t, []string{"GET /vehicles?favorite=true", "GET /vehicles"}, srv.Requests())
}

func TestRefreshReturnsItsOwnCollection(t *testing.T) {
	ctx := context.Background()
	_, ctrl, _ := newCatalog(t, fleet...)

	favModel, favRecords, err := ctrl.Refresh(ctx, FilterFavorites, "")
	require.NoError(t, err)
	_, allRecords, err := ctrl.Refresh(ctx, FilterAll, "")
	require.NoError(t, err)

	require.Equal(t, []int64{2}, ids(favRecords), "a later refresh must not leak into an earlier result")
	require.Equal(t, ids(favModel.Records), ids(favRecords))
	require.Len(t, allRecords, 4)
	require.Len(t, ctrl.Cached(), 4)

	favRecords[0].Name = "mutated"
	require.NotEqual(t, "mutated", ctrl.Cached()[1].Name)
}

func TestRefreshEmptyStates(t *testing.T) {
	ctx := context.Background()
	_, ctrl, _ := newCatalog(t)

	model, _, err := ctrl.Refresh(ctx, FilterAll, "")
	require.NoError(t, err)
	require.Empty(t, model.Records)
	require.NotNil(t, model.Empty)
	require.Equal(t, "No vehicles added yet.", model.Empty.Reason)
	require.Empty(t, model.Empty.Term)

	_, ctrl, _ = newCatalog(t, fleet...)
	model, _, err = ctrl.Refresh(ctx, FilterAll, "griter")
	require.NoError(t, err)
	require.NotNil(t, model.Empty)
	require.Equal(t, `No results for "griter".`, model.Empty.Reason)
	require.Equal(t, "Gritter", model.Empty.Suggestion)
}

func TestRefreshFailureKeepsLastGood(t *testing.T) {
	ctx := context.Background()
	srv, ctrl, _ := newCatalog(t, fleet...)

	_, ok := ctrl.LastGood()
	require.False(t, ok)

	_, _, err := ctrl.Refresh(ctx, FilterAll, "")
	require.NoError(t, err)

	srv.FailNext(http.StatusServiceUnavailable, "maintenance window")
	_, _, err = ctrl.Refresh(ctx, FilterNormal, "")
	var se *api.ServerError
	require.ErrorAs(t, err, &se)

	last, ok := ctrl.LastGood()
	require.True(t, ok)
	require.Len(t, last.Records, 4)
	require.Len(t, ctrl.Cached(), 4)
}

func TestDetailFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	srv, ctrl, _ := newCatalog(t, fleet...)
	_, _, err := ctrl.Refresh(ctx, FilterAll, "")
	require.NoError(t, err)

	v, err := ctrl.Detail(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Refuse Truck", v.Name)

	srv.FailNext(http.StatusBadGateway, "")
	v, err = ctrl.Detail(ctx, 3)
	require.Error(t, err)
	require.Equal(t, "Refuse Truck", v.Name)

	_, err = ctrl.Detail(ctx, 99)
	require.Error(t, err)
}

func TestAddRejectsYear1949WithoutNetwork(t *testing.T) {
	srv, _, disp := newCatalog(t)

	out := disp.Add(context.Background(), Form{Name: "Old", Category: "Vintage", Model: "V1", Year: "1949"}, Query{})
	require.True(t, IsValidation(out.Err))
	require.Nil(t, out.Model)
	require.Empty(t, srv.Requests())
}

func TestAddAcceptsBoundaryYears(t *testing.T) {
	ctx := context.Background()
	srv, _, disp := newCatalog(t)

	for _, year := range []string{"1950", "2024"} {
		out := disp.Add(ctx, Form{Name: "Truck " + year, Category: "Heavy", Model: "X", Year: year}, Query{})
		require.NoError(t, out.Err)
		require.True(t, out.ClearForm)
		require.NotNil(t, out.Record)
		require.NotZero(t, out.Record.ID)
		require.False(t, out.Record.Favorite)
		require.Equal(t, "Vehicle added.", out.Notice)
	}
	require.Len(t, srv.Records(), 2)
	require.Equal(t, []string{"POST /vehicles", "GET /vehicles", "POST /vehicles", "GET /vehicles"}, srv.Requests())
}

func TestAddServerRejectionSurfacesDetailAndStillRefreshes(t *testing.T) {
	srv, _, disp := newCatalog(t, fleet...)
	srv.FailNext(http.StatusBadRequest, "model already registered")

	out := disp.Add(context.Background(), Form{Name: "Truck A", Category: "Heavy", Model: "X100", Year: "2021"}, Query{Search: "truck"})
	require.Error(t, out.Err)
	require.False(t, out.ClearForm)
	require.Equal(t, "Could not add vehicle: model already registered", out.Notice)
	require.NotNil(t, out.Model)
	require.Equal(t, []int64{3}, ids(out.Model.Records))
}

func TestAddServerRejectionWithoutDetailUsesGenericMessage(t *testing.T) {
	srv, _, disp := newCatalog(t)
	srv.FailNext(http.StatusInternalServerError, "")

	out := disp.Add(context.Background(), Form{Name: "Truck A", Category: "Heavy", Model: "X100", Year: "2021"}, Query{})
	require.Equal(t, "Could not add vehicle: the server rejected the vehicle", out.Notice)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	srv, _, disp := newCatalog(t, fleet...)

	out := disp.Delete(ctx, 1, func(int64) bool { return false }, Query{})
	require.True(t, out.Aborted)
	require.NoError(t, out.Err)
	require.Empty(t, srv.Requests())

	out = disp.Delete(ctx, 1, nil, Query{})
	require.True(t, out.Aborted)
	require.Empty(t, srv.Requests())

	var asked int64
	out = disp.Delete(ctx, 1, func(id int64) bool { asked = id; return true }, Query{})
	require.Equal(t, int64(1), asked)
	require.False(t, out.Aborted)
	require.NoError(t, out.Err)
	require.Equal(t, "vehicle deleted", out.Notice)
	require.NotNil(t, out.Model)
	require.NotContains(t, ids(out.Model.Records), int64(1))
}

func TestDeleteFailureLeavesRecord(t *testing.T) {
	srv, _, disp := newCatalog(t, fleet...)
	srv.FailNext(http.StatusForbidden, "admin only")

	out := disp.Delete(context.Background(), 2, Confirmed, Query{})
	require.Error(t, out.Err)
	require.Equal(t, "Delete failed: admin only", out.Notice)
	require.Contains(t, ids(out.Model.Records), int64(2))
}

func TestToggleFavoriteTwiceRestores(t *testing.T) {
	ctx := context.Background()
	_, ctrl, disp := newCatalog(t, fleet...)

	out := disp.ToggleFavorite(ctx, 3, Query{Filter: FilterFavorites})
	require.NoError(t, out.Err)
	require.True(t, out.Record.Favorite)
	require.Equal(t, "Added to favorites.", out.Notice)
	require.Equal(t, []int64{2, 3}, ids(out.Model.Records))
	require.Equal(t, []int64{2, 3}, ids(out.Collection))

	out = disp.ToggleFavorite(ctx, 3, Query{Filter: FilterFavorites})
	require.NoError(t, out.Err)
	require.False(t, out.Record.Favorite)
	require.Equal(t, "Removed from favorites.", out.Notice)
	require.Equal(t, []int64{2}, ids(out.Model.Records))
	require.Equal(t, []int64{2}, ids(ctrl.Cached()))
}

func TestActionRefreshFailureIsReported(t *testing.T) {
	srv, _, disp := newCatalog(t, fleet...)
	srv.FailNextMatching("GET /vehicles", http.StatusServiceUnavailable, "backend restarting")

	out := disp.ToggleFavorite(context.Background(), 3, Query{})
	require.NoError(t, out.Err)
	require.Error(t, out.RefreshErr)
	require.True(t, out.Failed())
	require.Nil(t, out.Model)
	require.Nil(t, out.Collection)
	require.Equal(t, "Added to favorites. Refreshing the list failed: backend restarting", out.Notice)
}

package favoriterecipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlltidSemester1337/chef-web-backend/internal/auth"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/curate"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

const tomatoSoup = "## Tomato Soup\n\n**Ingredients:**\n\n- tomatoes\n\n**Instructions:**\n\nChop. Boil."

type fakeFavorites struct {
	existing map[string]bool
	put      []*chefdb.Recipe
}

func (f *fakeFavorites) Exists(_ context.Context, _ string, title string) (bool, error) {
	return f.existing[title], nil
}

func (f *fakeFavorites) Put(_ context.Context, recipe *chefdb.Recipe) (string, error) {
	recipe.ID = "push-1"
	f.put = append(f.put, recipe)
	return recipe.ID, nil
}

type fakeIllustrator struct{}

func (fakeIllustrator) Illustrate(context.Context, string) (string, error) {
	return "https://storage.googleapis.com/bucket/recipes/abc", nil
}

type fakeUsers struct{}

func (fakeUsers) User(_ context.Context, uid string) (session.User, error) {
	return session.User{UID: uid}, nil
}

func serve(t *testing.T, favorites *fakeFavorites, answer string) (*httptest.ResponseRecorder, response) {
	t.Helper()

	sessions := session.NewManager()
	sessions.Start(session.User{UID: "u1"})
	handler := NewHandler(curate.New(favorites, fakeIllustrator{}), sessions, fakeUsers{})

	body, err := json.Marshal(request{Answer: answer})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/recipes/favorite", strings.NewReader(string(body)))
	req = req.WithContext(auth.WithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()

	handler.FavoriteRecipe(rec, req)

	var res response
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	}
	return rec, res
}

func TestFavoriteRecipe_Saved(t *testing.T) {
	favorites := &fakeFavorites{}

	rec, res := serve(t, favorites, tomatoSoup)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "saved", res.Status)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "Tomato Soup", res.Recipe.Title)
	assert.Equal(t, "u1", res.Recipe.UID)
	require.Len(t, favorites.put, 1)
}

func TestFavoriteRecipe_Duplicate(t *testing.T) {
	favorites := &fakeFavorites{existing: map[string]bool{"Tomato Soup": true}}

	rec, res := serve(t, favorites, tomatoSoup)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "duplicate", res.Status)
	assert.Nil(t, res.Recipe)
	assert.Empty(t, favorites.put)
}

func TestFavoriteRecipe_NotARecipe(t *testing.T) {
	favorites := &fakeFavorites{}

	rec, res := serve(t, favorites, "Sure! What are you in the mood for?")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "not_a_recipe", res.Status)
	assert.Nil(t, res.Recipe)
	assert.Empty(t, favorites.put)
}

func TestFavoriteRecipe_EmptyAnswer(t *testing.T) {
	rec, _ := serve(t, &fakeFavorites{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

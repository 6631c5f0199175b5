package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
)

func doForm(t *testing.T, r *gin.Engine, path string, fields map[string]string, file []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile("profilePicture", "avatar.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(file)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func baseProfileFields() map[string]string {
	return map[string]string{
		"firstName":    "Test",
		"lastName":     "User",
		"emailAddress": "a@b.com",
		"userName":     "ab1",
	}
}

func TestGetProfile(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	w := doJSON(r, http.MethodGet, "/users/profile", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	user, ok := data["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing user in %v", data)
	}
	if user["userName"] != "ab1" || user["emailAddress"] != "a@b.com" {
		t.Errorf("profile = %v, want registered identity", user)
	}
	if _, present := user["password"]; present {
		t.Error("profile exposes the password field")
	}
}

func TestUpdateProfile_Fields(t *testing.T) {
	r, db := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	fields := baseProfileFields()
	fields["bio"] = "writes about Go"
	fields["phoneNumber"] = "555-0100"
	fields["status"] = "hello"

	w := doForm(t, r, "/users/update-profile", fields, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.Where("user_name = ?", "ab1").First(&user).Error; err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user.Bio != "writes about Go" || user.PhoneNumber != "555-0100" {
		t.Errorf("profile fields not persisted: bio=%q phone=%q", user.Bio, user.PhoneNumber)
	}
}

func TestUpdateProfile_MissingRequired(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	w := doForm(t, r, "/users/update-profile", map[string]string{
		"firstName": "OnlyFirst",
	}, nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_InvalidSecondaryEmail(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	fields := baseProfileFields()
	fields["secondaryEmail"] = "not-an-email"

	w := doForm(t, r, "/users/update-profile", fields, nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateProfile_UsernameCollision(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	registerUser(t, r, "taken", "taken@b.com")
	cookie := loginCookie(t, r, "ab1")

	fields := baseProfileFields()
	fields["userName"] = "taken"

	w := doForm(t, r, "/users/update-profile", fields, nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Username is already taken") {
		t.Errorf("body = %s, want username-specific message", w.Body.String())
	}
}

func TestUpdateProfile_PasswordRotation(t *testing.T) {
	r, db := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	var before models.User
	if err := db.Where("user_name = ?", "ab1").First(&before).Error; err != nil {
		t.Fatalf("find user: %v", err)
	}

	// wrong current password: 401, digest untouched
	fields := baseProfileFields()
	fields["currentPassword"] = "not the password"
	fields["newPassword"] = "another perfectly long passphrase"
	w := doForm(t, r, "/users/update-profile", fields, nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong current password: status = %d, want 401", w.Code)
	}

	var after models.User
	db.Where("user_name = ?", "ab1").First(&after)
	if after.Password != before.Password {
		t.Error("digest changed despite wrong current password")
	}

	// weak new password: 400
	fields["currentPassword"] = strongPassword
	fields["newPassword"] = "123456"
	w = doForm(t, r, "/users/update-profile", fields, nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("weak new password: status = %d, want 400", w.Code)
	}

	// valid rotation
	fields["newPassword"] = "another perfectly long passphrase"
	w = doForm(t, r, "/users/update-profile", fields, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("rotation: status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	db.Where("user_name = ?", "ab1").First(&after)
	if !util.CheckPassword(after.Password, "another perfectly long passphrase") {
		t.Error("new digest does not verify against the new password")
	}
	if util.CheckPassword(after.Password, strongPassword) {
		t.Error("old password still verifies after rotation")
	}
}

// Minimal PNG header is enough for content sniffing.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func TestUpdateProfile_Photo(t *testing.T) {
	r, db := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	w := doForm(t, r, "/users/update-profile", baseProfileFields(), pngHeader, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.Where("user_name = ?", "ab1").First(&user).Error; err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user.ProfilePicture == "" {
		t.Fatal("profile picture path not persisted")
	}
	if !strings.HasSuffix(user.ProfilePicture, ".png") {
		t.Errorf("stored path = %q, want .png extension", user.ProfilePicture)
	}
	if strings.Contains(user.ProfilePicture, "avatar") {
		t.Errorf("stored path %q keeps the client filename, want randomized", user.ProfilePicture)
	}
}

// When the record update fails after the photo was written, the file
// must not stay behind in the upload directory.
func TestUpdateProfile_NoOrphanFileOnDBError(t *testing.T) {
	r, db, cfg := newTestEnv(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	// break the update while leaving the preceding queries working
	if err := db.Exec("ALTER TABLE users RENAME COLUMN bio TO bio_retired").Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}

	w := doForm(t, r, "/users/update-profile", baseProfileFields(), pngHeader, cookie)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body = %s", w.Code, w.Body.String())
	}

	entries, err := os.ReadDir(cfg.Upload.Dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d orphan file(s) after failed update", len(entries))
	}
}

func TestUpdateProfile_RejectsNonImage(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "ab1", "a@b.com")
	cookie := loginCookie(t, r, "ab1")

	w := doForm(t, r, "/users/update-profile", baseProfileFields(), []byte("%PDF-1.4 not an image"), cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

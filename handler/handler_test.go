package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"Forum/config"
	"Forum/dao"
	"Forum/dao/cache"
	"Forum/internal/testdb"
	"Forum/models"
	"Forum/pkg/jwt"
	"Forum/pkg/response"
	"Forum/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) ToRoom(room, event string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, room+"|"+event)
}

func (r *recorder) ToAll(event string, payload any) {
	r.ToRoom("", event, payload)
}

type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Error       string          `json:"error"`
	Data        json.RawMessage `json:"data"`
	Count       int64           `json:"count"`
	TotalPages  int64           `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	root   string
	token  string
	events *recorder
	user   *models.User
	secret string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	conf := &config.Config{Jwt: &config.Jwt{Secret: "segredo-teste", Expire: 3600}}
	events := &recorder{}
	root := t.TempDir()

	user := &models.User{ID: 42, Name: "Ana", Email: "ana@forum.test", Role: models.RoleManager}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := jwt.GenerateToken([]byte(conf.Jwt.Secret), user.ID, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	sanitizer := service.NewSanitizer()
	attachments := service.NewAttachmentService(&config.Upload{MaxSize: 10 << 20}, service.NewLocalStorage(root))
	topicDAO := dao.NewTopic(db)
	commentDAO := dao.NewComment(db)

	topics := &service.TopicService{
		TopicDAO:    topicDAO,
		CategoryDAO: dao.NewCategory(db),
		UserDAO:     dao.NewUser(db),
		CommentDAO:  commentDAO,
		TopicCache:  cache.NewTopicStorage(nil),
		Attachments: attachments,
		Broadcaster: events,
		Sanitizer:   sanitizer,
	}
	comments := &service.CommentService{
		TopicDAO:    topicDAO,
		CommentDAO:  commentDAO,
		Attachments: attachments,
		Broadcaster: events,
		Sanitizer:   sanitizer,
	}
	moderation := &service.ModerationService{
		Config:      &config.Moderation{},
		CommentDAO:  commentDAO,
		RatingDAO:   dao.NewCommentRating(db),
		ReportDAO:   dao.NewCommentReport(db),
		Broadcaster: events,
		Sanitizer:   sanitizer,
	}

	r := gin.New()
	r.Use(response.ErrorMiddleware())
	(&Health{Db: db}).RegisterRouter(r)
	(&TopicHandler{Config: conf, TopicService: topics}).RegisterRouter(r)
	(&CommentsHandler{Config: conf, CommentService: comments, ModerationService: moderation}).RegisterRouter(r)
	reports := &service.ReportService{
		CommentDAO:  commentDAO,
		ReportDAO:   moderation.ReportDAO,
		Broadcaster: events,
		Sanitizer:   sanitizer,
	}
	(&ReportHandler{Config: conf, ReportService: reports}).RegisterRouter(r)

	return &testApp{t: t, engine: r, db: db, root: root, token: token, events: events, user: user, secret: conf.Jwt.Secret}
}

// as 切换为指定用户的 token
func (a *testApp) as(u *models.User) {
	a.t.Helper()
	token, err := jwt.GenerateToken([]byte(a.secret), u.ID, u.Role, time.Hour)
	if err != nil {
		a.t.Fatalf("token: %v", err)
	}
	a.token = token
}

func (a *testApp) do(method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		a.t.Fatalf("%s %s: invalid json %q", method, path, w.Body.String())
	}
	return w, env
}

func (a *testApp) doJSON(method, path string, payload any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	b, _ := json.Marshal(payload)
	return a.do(method, path, bytes.NewReader(b), "application/json")
}

type upload struct {
	name     string
	mimeType string
	content  []byte
}

func (a *testApp) postComment(topicID uint64, text string, file *upload) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("texto", text)
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.name))
		h.Set("Content-Type", file.mimeType)
		part, err := mw.CreatePart(h)
		if err != nil {
			a.t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(file.content)
	}
	_ = mw.Close()
	return a.do(http.MethodPost, fmt.Sprintf("/topicos-categoria/%d/comentarios", topicID), &buf, mw.FormDataContentType())
}

func (a *testApp) countComments(topicID uint64) int64 {
	var n int64
	a.db.Model(&models.Comment{}).Where("id_topico = ?", topicID).Count(&n)
	return n
}

func TestUnauthorized(t *testing.T) {
	app := newTestApp(t)
	app.token = ""
	w, env := app.do(http.MethodGet, "/topicos-categoria", nil, "")
	if w.Code != http.StatusUnauthorized || env.Success {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetTopic_NotFound(t *testing.T) {
	app := newTestApp(t)
	for _, id := range []string{"999", "0", "abc"} {
		w, env := app.do(http.MethodGet, "/topicos-categoria/"+id, nil, "")
		if w.Code != http.StatusNotFound || env.Success {
			t.Fatalf("id %s: status = %d, body = %s", id, w.Code, w.Body.String())
		}
	}
}

func TestEndToEnd_TopicThenComment(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "JavaScript")

	w, env := app.doJSON(http.MethodPost, "/topicos-categoria", map[string]any{
		"id_categoria": cat.ID,
		"titulo":       "Dúvidas de JS",
	})
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create topic: %d %s", w.Code, w.Body.String())
	}
	var topic struct {
		ID        uint64 `json:"id_topico"`
		CreatedBy uint64 `json:"criado_por"`
	}
	_ = json.Unmarshal(env.Data, &topic)
	if topic.ID == 0 || topic.CreatedBy != 42 {
		t.Fatalf("unexpected topic %s", env.Data)
	}

	w, env = app.postComment(topic.ID, "Olá", nil)
	if w.Code != http.StatusCreated || env.Message != "Comentário criado com sucesso" {
		t.Fatalf("create comment: %d %s", w.Code, w.Body.String())
	}

	w, env = app.do(http.MethodGet, fmt.Sprintf("/topicos-categoria/%d/comentarios", topic.ID), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var items []struct {
		Text     *string `json:"texto"`
		Likes    int64   `json:"likes"`
		Dislikes int64   `json:"dislikes"`
		Reports  int64   `json:"denuncias"`
		User     struct {
			ID uint64 `json:"id_utilizador"`
		} `json:"utilizador"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Count != 1 || env.TotalPages != 1 || env.CurrentPage != 1 || len(items) != 1 {
		t.Fatalf("unexpected page %s", w.Body.String())
	}
	c := items[0]
	if c.Text == nil || *c.Text != "Olá" || c.Likes != 0 || c.Dislikes != 0 || c.Reports != 0 || c.User.ID != 42 {
		t.Fatalf("unexpected comment %+v", c)
	}
}

func TestCreateComment_EmptyIsRejected(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Vazio", time.Now())

	w, env := app.postComment(topic.ID, "   ", nil)
	if w.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if app.countComments(topic.ID) != 0 {
		t.Fatal("no comment must be stored")
	}
}

func TestCreateComment_AttachmentOnly(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Anexos", time.Now())

	w, env := app.postComment(topic.ID, "", &upload{name: "notas.pdf", mimeType: "application/pdf", content: []byte("%PDF-1.4")})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var item struct {
		Text *string `json:"texto"`
		URL  *string `json:"anexo_url"`
		Name *string `json:"anexo_nome"`
		Kind *string `json:"tipo_anexo"`
	}
	_ = json.Unmarshal(env.Data, &item)
	if item.Text != nil {
		t.Fatalf("texto = %q, want null", *item.Text)
	}
	if item.URL == nil || item.Name == nil || *item.Name != "notas.pdf" || item.Kind == nil || *item.Kind != models.AttachmentFile {
		t.Fatalf("attachment fields not populated: %s", env.Data)
	}
	if !strings.HasPrefix(*item.URL, "uploads/chat/geral/anexos/") || !strings.HasSuffix(*item.URL, "_42.pdf") {
		t.Fatalf("url = %q", *item.URL)
	}

	stored := filepath.Join(app.root, filepath.FromSlash(strings.TrimPrefix(*item.URL, "uploads/")))
	if b, err := os.ReadFile(stored); err != nil || string(b) != "%PDF-1.4" {
		t.Fatalf("stored file = %q, %v", b, err)
	}
}

func TestCreateComment_RejectedMime(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Anexos", time.Now())

	w, _ := app.postComment(topic.ID, "veja", &upload{name: "x.exe", mimeType: "application/x-msdownload", content: []byte("MZ")})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if app.countComments(topic.ID) != 0 {
		t.Fatal("no comment must be stored")
	}
}

func TestRate_TwiceAccumulates(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Votos", time.Now())
	comment := testdb.Comment(t, app.db, topic.ID, app.user.ID, "bom", time.Now())
	path := fmt.Sprintf("/topicos-categoria/%d/comentarios/%d/avaliar", topic.ID, comment.ID)

	for want := int64(1); want <= 2; want++ {
		w, env := app.doJSON(http.MethodPost, path, map[string]string{"tipo": "like"})
		if w.Code != http.StatusOK || env.Message != "Comentário curtido com sucesso" {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var got struct {
			Likes    int64 `json:"likes"`
			Dislikes int64 `json:"dislikes"`
		}
		_ = json.Unmarshal(env.Data, &got)
		if got.Likes != want || got.Dislikes != 0 {
			t.Fatalf("call %d: got %+v", want, got)
		}
	}

	w, env := app.doJSON(http.MethodPost, path, map[string]string{"tipo": "dislike"})
	if w.Code != http.StatusOK || env.Message != "Comentário descurtido com sucesso" {
		t.Fatalf("dislike: %d %s", w.Code, w.Body.String())
	}
}

func TestRate_InvalidKind(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Votos", time.Now())
	comment := testdb.Comment(t, app.db, topic.ID, app.user.ID, "bom", time.Now())
	path := fmt.Sprintf("/topicos-categoria/%d/comentarios/%d/avaliar", topic.ID, comment.ID)

	for _, body := range []any{map[string]string{"tipo": "banana"}, nil} {
		w, _ := app.doJSON(http.MethodPost, path, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status = %d", body, w.Code)
		}
	}

	var stored models.Comment
	app.db.First(&stored, comment.ID)
	if stored.Likes != 0 || stored.Dislikes != 0 {
		t.Fatalf("counters mutated: %+v", stored)
	}
}

func TestReport(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Denúncias", time.Now())
	comment := testdb.Comment(t, app.db, topic.ID, app.user.ID, "spam", time.Now())

	path := fmt.Sprintf("/topicos-categoria/%d/comentarios/%d/denunciar", topic.ID, comment.ID)
	w, env := app.doJSON(http.MethodPost, path, map[string]string{"motivo": "spam"})
	if w.Code != http.StatusOK || env.Message != "Comentário denunciado com sucesso" {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got struct {
		Reports int64 `json:"denuncias"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.Reports != 1 {
		t.Fatalf("denuncias = %d", got.Reports)
	}

	w, _ = app.doJSON(http.MethodPost, fmt.Sprintf("/topicos-categoria/%d/comentarios/%d/denunciar", topic.ID+1, comment.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-topic report: status = %d", w.Code)
	}
}

func TestDeleteTopic_Forbidden(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	owner := testdb.User(t, app.db, "Outro", 3)
	topic := testdb.Topic(t, app.db, cat.ID, owner.ID, "Alheio", time.Now())

	w, env := app.do(http.MethodDelete, fmt.Sprintf("/topicos-categoria/%d", topic.ID), nil, "")
	if w.Code != http.StatusForbidden || env.Success {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	app.token = ""
	w, env := app.do(http.MethodGet, "/healthz", nil, "")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var status map[string]string
	_ = json.Unmarshal(env.Data, &status)
	if status["database"] != "ok" || status["redis"] != "disabled" {
		t.Fatalf("unexpected status %s", env.Data)
	}
}

func TestListPlainTopics(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Go")
	for _, title := range []string{"Canais", "Generics"} {
		w, _ := app.doJSON(http.MethodPost, "/topicos", map[string]any{"id_categoria": cat.ID, "titulo": title})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", title, w.Code, w.Body.String())
		}
	}

	w, env := app.do(http.MethodGet, "/topicos", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var items []struct {
		Title string `json:"titulo"`
	}
	_ = json.Unmarshal(env.Data, &items)
	if len(items) != 2 {
		t.Fatalf("got %d topics, want 2: %s", len(items), env.Data)
	}
}

func TestTopicWrites_RequireManagerRole(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Existente", time.Now())
	app.as(testdb.User(t, app.db, "Aluno", 3))

	body := map[string]any{"id_categoria": cat.ID, "titulo": "Novo"}
	for _, req := range []struct {
		method, path string
	}{
		{http.MethodPost, "/topicos-categoria"},
		{http.MethodPost, "/topicos"},
		{http.MethodPut, fmt.Sprintf("/topicos-categoria/%d", topic.ID)},
		{http.MethodDelete, fmt.Sprintf("/topicos-categoria/%d", topic.ID)},
	} {
		w, env := app.doJSON(req.method, req.path, body)
		if w.Code != http.StatusForbidden || env.Success {
			t.Fatalf("%s %s: status = %d, body = %s", req.method, req.path, w.Code, w.Body.String())
		}
	}

	var n int64
	app.db.Model(&models.Topic{}).Count(&n)
	if n != 1 {
		t.Fatalf("topics = %d, want 1", n)
	}

	w, _ := app.do(http.MethodGet, "/topicos-categoria", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("students can still read topics, status = %d", w.Code)
	}
}

func TestReports_AdminOnly(t *testing.T) {
	app := newTestApp(t)
	for _, req := range []struct {
		method, path string
	}{
		{http.MethodGet, "/denuncias/forum-comentario"},
		{http.MethodPost, "/denuncias/forum-comentario/1/resolver"},
		{http.MethodPost, "/forum-comentario/ocultar"},
	} {
		w, _ := app.doJSON(req.method, req.path, nil)
		if w.Code != http.StatusForbidden {
			t.Fatalf("manager %s %s: status = %d", req.method, req.path, w.Code)
		}
	}
}

func TestReports_ListResolveHide(t *testing.T) {
	app := newTestApp(t)
	cat := testdb.Category(t, app.db, "Geral")
	topic := testdb.Topic(t, app.db, cat.ID, app.user.ID, "Debate", time.Now())
	comment := testdb.Comment(t, app.db, topic.ID, app.user.ID, "ofensivo", time.Now())

	reportPath := fmt.Sprintf("/topicos-categoria/%d/comentarios/%d/denunciar", topic.ID, comment.ID)
	for _, reason := range []string{"spam", "insulto"} {
		if w, _ := app.doJSON(http.MethodPost, reportPath, map[string]string{"motivo": reason}); w.Code != http.StatusOK {
			t.Fatalf("report: %d %s", w.Code, w.Body.String())
		}
	}

	app.as(testdb.User(t, app.db, "Admin", models.RoleAdmin))
	w, env := app.do(http.MethodGet, "/denuncias/forum-comentario?estado=pendentes", nil, "")
	if w.Code != http.StatusOK || env.Count != 2 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var items []struct {
		ID       uint64 `json:"id_denuncia"`
		Reason   string `json:"motivo"`
		Reporter struct {
			Name string `json:"nome"`
		} `json:"denunciante"`
		Comment struct {
			Text string `json:"texto"`
		} `json:"comentario"`
	}
	_ = json.Unmarshal(env.Data, &items)
	if len(items) != 2 || items[0].Reason != "insulto" || items[0].Reporter.Name != "Ana" || items[0].Comment.Text != "ofensivo" {
		t.Fatalf("unexpected items %s", env.Data)
	}

	resolvePath := fmt.Sprintf("/denuncias/forum-comentario/%d/resolver", items[0].ID)
	if w, _ := app.doJSON(http.MethodPost, resolvePath, map[string]string{"acao_tomada": ""}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty action: status = %d", w.Code)
	}
	w, env = app.doJSON(http.MethodPost, resolvePath, map[string]string{"acao_tomada": "Aviso enviado"})
	if w.Code != http.StatusOK || env.Message != "Denúncia resolvida com sucesso" {
		t.Fatalf("resolve: %d %s", w.Code, w.Body.String())
	}
	w, env = app.doJSON(http.MethodPost, resolvePath, map[string]string{"acao_tomada": "Outra"})
	if w.Code != http.StatusBadRequest || env.Message != "Esta denúncia já foi resolvida" {
		t.Fatalf("second resolve: %d %s", w.Code, w.Body.String())
	}
	if w, _ := app.doJSON(http.MethodPost, "/denuncias/forum-comentario/999/resolver", map[string]string{"acao_tomada": "x"}); w.Code != http.StatusNotFound {
		t.Fatalf("missing report: status = %d", w.Code)
	}

	w, env = app.doJSON(http.MethodPost, "/forum-comentario/ocultar", map[string]uint64{"id": comment.ID})
	if w.Code != http.StatusOK || env.Message != "Comentário ocultado com sucesso" {
		t.Fatalf("hide: %d %s", w.Code, w.Body.String())
	}
	var hidden struct {
		Resolved int64 `json:"denuncias_resolvidas"`
	}
	_ = json.Unmarshal(env.Data, &hidden)
	if hidden.Resolved != 1 {
		t.Fatalf("denuncias_resolvidas = %d, want 1", hidden.Resolved)
	}

	w, env = app.do(http.MethodGet, fmt.Sprintf("/topicos-categoria/%d/comentarios", topic.ID), nil, "")
	if w.Code != http.StatusOK || env.Count != 0 {
		t.Fatalf("hidden comment still listed: %d %s", w.Code, w.Body.String())
	}

	w, env = app.do(http.MethodGet, "/denuncias/forum-comentario?estado=pendentes", nil, "")
	if w.Code != http.StatusOK || env.Count != 0 {
		t.Fatalf("pending after hide: %d %s", w.Code, w.Body.String())
	}
}

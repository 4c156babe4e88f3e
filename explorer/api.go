// Package explorer 提供查看与追加区块的HTTP页面
package explorer

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"powBlockchain/blockchain"
	"powBlockchain/utils"
)

var log utils.Logger

// UseLogger 设置explorer包使用的日志对象
func UseLogger(logger utils.Logger) {
	log = logger
}

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type htmlData struct {
	Blocks []*blockchain.Block
	Config blockchain.Config
}

func (data htmlData) TimeStampToString(timeStamp int64) string {
	return time.Unix(timeStamp, 0).UTC().Format(blockchain.TimeLayout)
}

type handler struct {
	bc *blockchain.Blockchain
}

// NewHandler 返回区块浏览器的路由
//
//	GET  /            区块列表页面
//	POST /            以表单字段data挖一个新区块
//	GET  /api/blocks  JSON格式的区块列表
func NewHandler(bc *blockchain.Blockchain) http.Handler {
	h := &handler{bc: bc}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.index)
	mux.HandleFunc("/api/blocks", h.blocks)
	return mux
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		// data作为不透明内容上链，空字符串同样接受
		block, result, err := h.bc.AddData(r.PostFormValue("data"))
		if err != nil {
			log.Warning("explorer: add block failed:", err)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Infof("explorer: block %d %s", block.Index(), result.State)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := htmlData{
		Blocks: h.bc.Blocks(),
		Config: h.bc.Config(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Error("explorer: render:", err)
	}
}

func (h *handler) blocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.bc.Blocks()); err != nil {
		log.Error("explorer: encode:", err)
	}
}

// NewServer 按配置的超时（秒）创建HTTP服务
func NewServer(addr string, readTimeout, writeTimeout int64, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    time.Duration(readTimeout * int64(time.Second)),
		WriteTimeout:   time.Duration(writeTimeout * int64(time.Second)),
		MaxHeaderBytes: 1 << 20,
	}
}

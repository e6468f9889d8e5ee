// Package client 是管理后台的 API 客户端：
// resty 封装 + 显式会话上下文，实现列表/删除等后端契约，
// 并把列表接口适配成 dataview 的 Host。
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"pharmacy_admin_v1_202608/pkg/dataview"
)

// ErrSessionExpired 收到 401：会话已清空，上层应引导重新登录
var ErrSessionExpired = errors.New("session expired, please login again")

// envelope 后端统一响应壳
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// pagedData 带 limit/offset 的列表接口的 data 形状
type pagedData struct {
	Data  []dataview.Record `json:"data"`
	Total int64             `json:"total"`
}

// ListResult 列表结果
type ListResult struct {
	Records []dataview.Record
	Total   int64
}

// ==================== Client ====================

// Client 管理后台 API 客户端
type Client struct {
	http *resty.Client
	auth *AuthContext

	// OnSessionExpired 401 时回调 (前端语境下等价于整页刷新回登录页)
	OnSessionExpired func()
}

// New 创建客户端
// 所有出站请求自动带 Bearer token；401 统一清会话并短路为 ErrSessionExpired
func New(baseURL string, auth *AuthContext) *Client {
	c := &Client{auth: auth}

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(120 * time.Second). // 和前端 axios 的超时保持一致
		SetHeader("Accept", "application/json")

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := auth.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		// 401 是会话级失败：清持久化状态，粗暴但跟线上行为一致
		if resp.StatusCode() == http.StatusUnauthorized {
			c.auth.Clear()
			if c.OnSessionExpired != nil {
				c.OnSessionExpired()
			}
			return ErrSessionExpired
		}
		return nil
	})

	return c
}

// decode 拆响应壳，status != success 一律算错误
func decode(resp *resty.Response, err error) (*envelope, error) {
	if err != nil {
		return nil, err
	}

	var env envelope
	if jerr := json.Unmarshal(resp.Body(), &env); jerr != nil {
		return nil, fmt.Errorf("invalid response body: %w", jerr)
	}
	if env.Status != "success" {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode())
	}
	return &env, nil
}

// ==================== 契约实现 ====================

// List 拉一页列表
// limit <= 0 时不带分页参数 (全量拉取)，此时 total 取返回行数
func (c *Client) List(resource string, limit, offset int) (*ListResult, error) {
	req := c.http.R()
	if limit > 0 {
		req.SetQueryParam("limit", fmt.Sprint(limit))
		req.SetQueryParam("offset", fmt.Sprint(offset))
	}

	env, err := decode(req.Get("/api/" + resource))
	if err != nil {
		return nil, err
	}

	// 分页形状优先，退回纯数组形状
	var paged pagedData
	if err := json.Unmarshal(env.Data, &paged); err == nil && paged.Data != nil {
		return &ListResult{Records: normalize(paged.Data), Total: paged.Total}, nil
	}

	var records []dataview.Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("unexpected list payload: %w", err)
	}
	return &ListResult{Records: normalize(records), Total: int64(len(records))}, nil
}

// Get 拉单条详情，out 为目标结构指针
func (c *Client) Get(resource, id string, out interface{}) error {
	env, err := decode(c.http.R().Get("/api/" + resource + "/" + id))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// Create 创建记录
func (c *Client) Create(resource string, body interface{}) (string, error) {
	env, err := decode(c.http.R().SetBody(body).Post("/api/" + resource))
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Update 更新记录
func (c *Client) Update(resource, id string, body interface{}) (string, error) {
	env, err := decode(c.http.R().SetBody(body).Put("/api/" + resource + "/" + id))
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Delete 删单条，返回服务端 message (toast 用)
func (c *Client) Delete(resource, id string) (string, error) {
	env, err := decode(c.http.R().Delete("/api/" + resource + "/" + id))
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// DeleteMany 批量删除
func (c *Client) DeleteMany(resource string, ids []string) (string, error) {
	env, err := decode(c.http.R().
		SetBody(map[string][]string{"ids": ids}).
		Delete("/api/" + resource))
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// normalize 保证每行的 id 是字符串 (JSON 数字会解成 float64)
func normalize(records []dataview.Record) []dataview.Record {
	for _, r := range records {
		if _, ok := r["id"].(string); !ok {
			if v, ok := r["id"]; ok {
				r["id"] = formatID(v)
			}
		}
	}
	return records
}

func formatID(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(v)
}

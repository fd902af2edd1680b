package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"personal-library/internal/middleware"
	"personal-library/pkg/logger"
	"personal-library/pkg/utils"
)

const (
	layoutTemplate = "base.html"
	errorTemplate  = "error.html"

	// PageTitleHeader carries the document title on partial responses so the
	// client-side router can update it.
	PageTitleHeader = "X-Page-Title"
)

func (h *TemplateHandler) basePageData(title, description string, extra gin.H) gin.H {
	siteName := h.config.SiteName

	fullTitle := siteName
	if title != "" {
		fullTitle = fmt.Sprintf("%s - %s", title, siteName)
	}
	if description == "" {
		description = h.config.SiteDescription
	}

	data := gin.H{
		"Title":       fullTitle,
		"Description": description,
		"Site": gin.H{
			"Name":        siteName,
			"Description": h.config.SiteDescription,
		},
		"Navigation":    h.navigation.Render(),
		"NavStylesheet": h.navigation.StylesheetPath(),
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	data := h.basePageData(title, description, extra)
	h.renderWithLayout(c, http.StatusOK, layoutTemplate, templateName+".html", data)
}

// renderWithLayout renders content inside layout. Requests made by the
// client-side router receive the content fragment only.
func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, layout, content string, data gin.H) {
	h.setNavigationState(c, data)
	h.setFlash(c, data)
	data["CSRFToken"] = middleware.CSRFToken(c)

	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		logger.Error(nil, "Content template not found", map[string]interface{}{"template": content})
		h.renderFallback(c, http.StatusInternalServerError, "Template not found")
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"template": content})
		h.renderFallback(c, http.StatusInternalServerError, "Failed to render content")
		return
	}

	// Header values are Latin-1 on the wire; the router decodes the escaped title.
	title, _ := data["Title"].(string)
	c.Header(PageTitleHeader, url.PathEscape(title))

	if middleware.IsNavigationRequest(c) {
		c.Data(status, "text/html; charset=utf-8", buf)
		return
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup(layout)
	if layoutTmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": layout})
		h.renderFallback(c, http.StatusInternalServerError, "Template not found")
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"template": layout})
		h.renderFallback(c, http.StatusInternalServerError, "Failed to render layout")
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	data := h.basePageData(title, "", gin.H{
		"ErrorTitle":   title,
		"ErrorMessage": msg,
		"StatusCode":   status,
	})
	h.renderWithLayout(c, status, layoutTemplate, errorTemplate, data)
}

// renderFallback answers without templates when the template set itself is
// broken.
func (h *TemplateHandler) renderFallback(c *gin.Context, status int, msg string) {
	c.String(status, msg)
}

func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	data["ActivePath"] = utils.NormalizePath(c.Request.URL.Path)
}

// setFlash resolves the message and error keys of a redirect. Unknown keys
// show nothing, so a crafted link cannot put its own text on the page.
func (h *TemplateHandler) setFlash(c *gin.Context, data gin.H) {
	if _, exists := data["Message"]; !exists {
		data["Message"] = flashMessages[c.Query("message")]
	}
	if _, exists := data["Error"]; !exists {
		message := ""
		if resolved, ok := apiErrorByCode(c.Query("error")); ok {
			message = resolved.message
		}
		data["Error"] = message
	}
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

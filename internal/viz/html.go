package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// CytoscapeCDN is the renderer script loaded by generated pages.
const CytoscapeCDN = "https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	// SearchEndpoint, when set, makes the page ask the server for matches
	// instead of matching in the browser.
	SearchEndpoint string
	// NodeEndpoint, when set, is asked for a node's details on tap.
	NodeEndpoint string
	// SelectionEndpoint, when set, records dropdown picks (POST) and popup
	// closes (DELETE) on the server.
	SelectionEndpoint string
	// Scale multiplies embedding coordinates into canvas units.
	Scale float64
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Scale: 100,
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Page              *Page
	ElementsJSON      template.JS
	ConfigJSON        template.JS
	SearchEndpoint    string
	NodeEndpoint      string
	SelectionEndpoint string
	ScriptSrc         string
}

// GenerateHTML generates a self-contained HTML page for the post map.
func GenerateHTML(page *Page, opts HTMLOptions) (string, error) {
	if page == nil {
		return "", fmt.Errorf("page cannot be nil")
	}
	if opts.Scale <= 0 {
		return "", fmt.Errorf("invalid scale %v: must be positive", opts.Scale)
	}

	if page.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	elements, err := page.ToCytoscapeJSON(opts.Scale)
	if err != nil {
		return "", err
	}

	cfg, err := json.Marshal(struct {
		Search SearchBox `json:"search"`
		Total  int       `json:"total"`
	}{page.Search, len(page.Nodes)})
	if err != nil {
		return "", fmt.Errorf("marshaling page config: %w", err)
	}

	data := templateData{
		Page:              page,
		ElementsJSON:      template.JS(elements),
		ConfigJSON:        template.JS(cfg),
		SearchEndpoint:    opts.SearchEndpoint,
		NodeEndpoint:      opts.NodeEndpoint,
		SelectionEndpoint: opts.SelectionEndpoint,
		ScriptSrc:         CytoscapeCDN,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// generateEmptyHTML returns HTML for a dataset with no valid posts.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Tweet Map - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #1A1E2E;
      color: #E2E8F0;
    }
    .empty-state {
      text-align: center;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #88CCF1;
    }
    .empty-state code {
      background: #2A303C;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No posts to display</h2>
    <p>The dataset has no rows with a body and valid coordinates.</p>
    <p>Check rejection reasons with <code>tmap load --human</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Page.Title.Heading}}</title>
  <script src="{{.ScriptSrc}}"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #1A1E2E;
      color: #E2E8F0;
      overflow: hidden;
    }
    #cy {
      width: 100vw;
      height: 100vh;
      background: #1A1E2E;
    }
    .panel {
      position: absolute;
      background: #2A303C;
      padding: 15px;
      border-radius: 10px;
      box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
      z-index: 1000;
    }
    .panel h3 {
      margin: 0 0 10px 0;
      color: #88CCF1;
    }
    #title {
      position: absolute;
      top: 20px;
      left: 50%;
      transform: translateX(-50%);
      text-align: center;
      z-index: 1000;
    }
    #title h1 {
      margin: 0 0 5px 0;
      font-size: 24px;
    }
    #title .subtitle {
      font-size: 16px;
      color: #94A3B8;
    }
    #search {
      position: absolute;
      top: 100px;
      left: 50%;
      transform: translateX(-50%);
      width: 300px;
      z-index: 1000;
    }
    #search input {
      width: 100%;
      padding: 8px 10px;
      border: none;
      border-radius: 6px;
      background: #2A303C;
      color: #E2E8F0;
    }
    #suggestions {
      list-style: none;
      margin: 4px 0 0 0;
      padding: 0;
      background: #2A303C;
      border-radius: 6px;
    }
    #suggestions li {
      padding: 6px 10px;
      cursor: pointer;
      font-size: 13px;
    }
    #suggestions li:hover {
      background: rgba(136, 204, 241, 0.1);
    }
    #suggestions .accessor {
      background: rgba(136, 204, 241, 0.2);
      border-radius: 3px;
      padding: 0 4px;
      margin-right: 6px;
      font-size: 11px;
    }
    #stats {
      top: 10px;
      right: 10px;
      max-width: 300px;
    }
    #showing {
      margin-top: 10px;
      color: #88CCF1;
    }
    #legend {
      bottom: 20px;
      left: 20px;
    }
    #legend .item {
      display: flex;
      align-items: center;
      margin-bottom: 5px;
    }
    #legend .swatch {
      width: 20px;
      height: 20px;
      border-radius: 50%;
      margin-right: 10px;
    }
    #legend .caption {
      font-size: 0.9em;
      margin-top: 10px;
      color: #94A3B8;
    }
    #popup {
      display: none;
      position: fixed;
      top: 50%;
      left: 50%;
      transform: translate(-50%, -50%);
      max-width: 500px;
      width: 90%;
      box-shadow: 0 4px 15px rgba(0, 0, 0, 0.3);
    }
    #popup .close {
      position: absolute;
      right: 10px;
      top: 10px;
      border: none;
      background: none;
      color: #E2E8F0;
      font-size: 24px;
      cursor: pointer;
    }
    #popup .body {
      white-space: pre-wrap;
      margin-bottom: 20px;
      line-height: 1.5;
    }
    #popup .metrics {
      display: grid;
      grid-template-columns: repeat(4, 1fr);
      gap: 10px;
      text-align: center;
      border-top: 1px solid #404756;
      padding-top: 15px;
    }
    #popup .metrics .value {
      font-weight: bold;
    }
    #popup .metrics .name {
      color: #94A3B8;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: #2A303C;
      border-radius: 4px;
      padding: 4px 8px;
      font-size: 12px;
      z-index: 1001;
      pointer-events: none;
    }
  </style>
</head>
<body>
  <div id="title">
    <h1>{{.Page.Title.Heading}}</h1>
    <div class="subtitle">{{.Page.Title.Subtitle}}</div>
  </div>

  <div id="search">
    <input id="search-input" type="text" placeholder="{{.Page.Search.Placeholder}}" autocomplete="off">
    <ul id="suggestions"></ul>
  </div>

  <div id="stats" class="panel">
    <h3>Dataset Statistics</h3>
    {{range .Page.Stats.Lines}}<div class="stat">{{.}}</div>
    {{end}}<div id="showing" style="display: none"></div>
  </div>

  <div id="legend" class="panel">
    <h3>Tweet Engagement</h3>
    {{range .Page.Legend}}<div class="item" data-bucket="{{.Bucket}}">
      <div class="swatch" style="background-color: {{.Color}}"></div>
      <span>{{.Label}}</span>
    </div>
    {{end}}<div class="caption">Node size increases with engagement</div>
  </div>

  <div id="popup" class="panel">
    <button class="close" title="Close">&times;</button>
    <h3 class="author"></h3>
    <p class="body"></p>
    <div class="metrics">
      <div><div class="value" data-metric="retweets"></div><div class="name">Retweets</div></div>
      <div><div class="value" data-metric="likes"></div><div class="name">Likes</div></div>
      <div><div class="value" data-metric="replies"></div><div class="name">Replies</div></div>
      <div><div class="value" data-metric="quotes"></div><div class="name">Quotes</div></div>
    </div>
  </div>

  <div id="cy"></div>
  <div id="tooltip"></div>

  <script>
    (function() {
      const elements = {{.ElementsJSON}};
      const config = {{.ConfigJSON}};
      const searchEndpoint = {{.SearchEndpoint}};
      const nodeEndpoint = {{.NodeEndpoint}};
      const selectionEndpoint = {{.SelectionEndpoint}};

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: elements,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'width': 'data(diameter)',
              'height': 'data(diameter)',
              'border-width': 0
            }
          },
          {
            selector: 'node:selected',
            style: {
              'border-width': 2,
              'border-color': '#E2E8F0'
            }
          },
          {
            selector: 'node.hidden',
            style: {
              'display': 'none'
            }
          }
        ],
        layout: { name: 'preset' },
        minZoom: 0.05,
        maxZoom: 20
      });

      const popup = document.getElementById('popup');
      const tooltip = document.getElementById('tooltip');
      const showing = document.getElementById('showing');
      const input = document.getElementById('search-input');
      const suggestions = document.getElementById('suggestions');

      function openPopup(data) {
        popup.querySelector('.author').textContent = '@' + (data.author || '');
        popup.querySelector('.body').textContent = data.body;
        popup.querySelectorAll('[data-metric]').forEach(function(el) {
          el.textContent = data.metrics[el.dataset.metric];
        });
        popup.style.display = 'block';
      }

      function closePopup() {
        popup.style.display = 'none';
        cy.nodes().unselect();
        if (selectionEndpoint) {
          fetch(selectionEndpoint, { method: 'DELETE' })
            .catch(function(err) { console.error('close failed', err); });
        }
      }

      popup.querySelector('.close').addEventListener('click', closePopup);

      // Show only the given ids; null restores every node.
      function applySearch(ids) {
        if (ids === null) {
          cy.nodes().removeClass('hidden');
          showing.style.display = 'none';
          return;
        }
        const keep = new Set(ids);
        cy.nodes().forEach(function(n) {
          if (keep.has(n.id())) {
            n.removeClass('hidden');
          } else {
            n.addClass('hidden');
          }
        });
        if (ids.length !== config.total) {
          showing.textContent = 'Showing: ' + ids.length + ' matches';
          showing.style.display = 'block';
        } else {
          showing.style.display = 'none';
        }
        const matched = cy.nodes().not('.hidden');
        cy.animate({ fit: { eles: matched, padding: 50 } }, { duration: 500 });
      }

      function zoomTo(node) {
        cy.animate({ center: { eles: node }, zoom: 4 }, { duration: 500 });
      }

      function selectNode(id) {
        const node = cy.getElementById(id);
        if (node.empty()) return;
        node.select();
        if (selectionEndpoint) {
          fetch(selectionEndpoint + '?id=' + encodeURIComponent(id), { method: 'POST' })
            .then(function(r) { return r.json(); })
            .then(function(res) {
              openPopup(res.popup);
              if (res.zoom) zoomTo(cy.getElementById(res.zoom.id));
            })
            .catch(function(err) { console.error('select failed', err); });
          return;
        }
        openPopup(node.data());
        zoomTo(node);
      }

      function truncate(s) {
        const max = config.search.truncateValues;
        return s.length > max ? s.slice(0, max - 3) + '...' : s;
      }

      function localSearch(q) {
        const needle = q.trim().toLowerCase();
        if (needle.length < config.search.minMatch) return { ids: null, suggestions: [] };
        const ids = [];
        const authorHits = [];
        const tweetHits = [];
        elements.forEach(function(el) {
          const d = el.data;
          const a = (d.author || '').toLowerCase().includes(needle);
          const b = d.body.toLowerCase().includes(needle);
          if (a) authorHits.push({ id: d.id, accessor: 'Author', value: d.author });
          if (b) tweetHits.push({ id: d.id, accessor: 'Tweet', value: d.body });
          if (a || b) ids.push(d.id);
        });
        const hits = authorHits.concat(tweetHits).slice(0, config.search.maxVisibleItems);
        return { ids: ids.length ? ids : null, suggestions: hits };
      }

      function renderSuggestions(items) {
        suggestions.innerHTML = '';
        items.forEach(function(s) {
          const li = document.createElement('li');
          const tag = document.createElement('span');
          tag.className = 'accessor';
          tag.textContent = s.accessor;
          li.appendChild(tag);
          li.appendChild(document.createTextNode(truncate(s.value)));
          li.addEventListener('click', function() {
            suggestions.innerHTML = '';
            selectNode(s.id);
          });
          suggestions.appendChild(li);
        });
      }

      input.addEventListener('input', function() {
        const q = input.value;
        if (searchEndpoint) {
          fetch(searchEndpoint + '?q=' + encodeURIComponent(q))
            .then(function(r) { return r.json(); })
            .then(function(res) {
              applySearch(res.ids);
              renderSuggestions(res.suggestions || []);
            })
            .catch(function(err) { console.error('search failed', err); });
          return;
        }
        const res = localSearch(q);
        applySearch(res.ids);
        renderSuggestions(res.suggestions);
      });

      cy.on('tap', 'node', function(evt) {
        if (nodeEndpoint) {
          fetch(nodeEndpoint + '?id=' + encodeURIComponent(evt.target.id()))
            .then(function(r) { return r.json(); })
            .then(openPopup)
            .catch(function(err) { console.error('node lookup failed', err); });
          return;
        }
        openPopup(evt.target.data());
      });

      cy.on('mouseover', 'node', function(evt) {
        tooltip.textContent = evt.target.data('label');
        const pos = evt.renderedPosition;
        tooltip.style.left = (pos.x + 12) + 'px';
        tooltip.style.top = (pos.y + 12) + 'px';
        tooltip.style.display = 'block';
      });

      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });
    })();
  </script>
</body>
</html>`

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"kenyadeals/dealworker/internal/crawler"
)

// WriteSnapshot writes the JSON artifact. The file is written to a
// temporary name and renamed so readers never see a partial snapshot.
func WriteSnapshot(path string, snap crawler.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return writeFile(path, data)
}

// WriteReport renders the static HTML report embedding the snapshot
func WriteReport(path string, snap crawler.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var buf bytes.Buffer
	err = reportTemplate.Execute(&buf, map[string]interface{}{
		"Generated": snap.Timestamp.Format("2006-01-02 15:04 MST"),
		"Total":     snap.TotalItems,
		"Snapshot":  template.JS(data),
	})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	return os.Rename(tmp, path)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Kenya Deals — Phones &amp; Laptops</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f5f5; color: #222; }
header { background: #1a7a4c; color: #fff; padding: 1rem 1.5rem; }
header h1 { margin: 0 0 .25rem; font-size: 1.4rem; }
header p { margin: 0; opacity: .85; font-size: .85rem; }
#controls { display: flex; flex-wrap: wrap; gap: .6rem; padding: 1rem 1.5rem; background: #fff; border-bottom: 1px solid #ddd; }
#controls input, #controls select { padding: .4rem .6rem; border: 1px solid #ccc; border-radius: 4px; font-size: .9rem; }
#controls label { font-size: .9rem; align-self: center; }
#grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(230px, 1fr)); gap: 1rem; padding: 1.5rem; }
.card { background: #fff; border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.card img { width: 100%; height: 140px; object-fit: contain; }
.card h3 { font-size: .95rem; margin: .5rem 0 .25rem; }
.card .price { font-weight: bold; color: #1a7a4c; }
.card .old { text-decoration: line-through; color: #999; font-size: .85rem; margin-left: .4rem; }
.card .badge { background: #e53935; color: #fff; border-radius: 3px; padding: 0 .3rem; font-size: .8rem; margin-left: .4rem; }
.card .meta { font-size: .78rem; color: #777; margin-top: .3rem; }
#empty { padding: 2rem; text-align: center; color: #777; }
</style>
</head>
<body>
<header>
<h1>Kenya Deals — Phones &amp; Laptops</h1>
<p>Generated {{.Generated}} &middot; {{.Total}} items</p>
</header>
<div id="controls">
<input id="search" type="search" placeholder="Search name or shop">
<select id="category">
<option value="">All categories</option>
<option value="phone">Phones</option>
<option value="laptop">Laptops</option>
</select>
<select id="shop"><option value="">All shops</option></select>
<input id="maxPrice" type="number" placeholder="Max price (KSh)" min="0">
<label><input id="discounted" type="checkbox"> Discounted only</label>
</div>
<div id="grid"></div>
<div id="empty" hidden>No matching deals.</div>
<script>
const snapshot = {{.Snapshot}};
const grid = document.getElementById('grid');
const empty = document.getElementById('empty');
const controls = ['search', 'category', 'shop', 'maxPrice', 'discounted']
  .map(id => document.getElementById(id));
const [search, category, shop, maxPrice, discounted] = controls;

for (const name of [...new Set(snapshot.items.map(i => i.shop))].sort()) {
  const opt = document.createElement('option');
  opt.value = name;
  opt.textContent = name;
  shop.appendChild(opt);
}

function fmt(n) { return 'KSh ' + Number(n).toLocaleString(); }

function render() {
  const q = search.value.trim().toLowerCase();
  const max = parseFloat(maxPrice.value);
  const items = snapshot.items.filter(i =>
    (!q || i.name.toLowerCase().includes(q) || i.shop.toLowerCase().includes(q)) &&
    (!category.value || i.category === category.value) &&
    (!shop.value || i.shop === shop.value) &&
    (isNaN(max) || i.currentPrice <= max) &&
    (!discounted.checked || i.discount !== ''));
  grid.innerHTML = items.map(i => ` + "`" + `
    <div class="card">
      ${i.imageUrl ? ` + "`" + `<img src="${i.imageUrl}" alt="" loading="lazy">` + "`" + ` : ''}
      <h3>${i.url ? ` + "`" + `<a href="${i.url}">${i.name}</a>` + "`" + ` : i.name}</h3>
      <span class="price">${fmt(i.currentPrice)}</span>
      ${i.discount ? ` + "`" + `<span class="old">${fmt(i.originalPrice)}</span><span class="badge">-${i.discount}</span>` + "`" + ` : ''}
      <div class="meta">${i.shop} &middot; ${i.category}</div>
    </div>` + "`" + `).join('');
  empty.hidden = items.length > 0;
}

controls.forEach(c => c.addEventListener('input', render));
render();
</script>
</body>
</html>
`))

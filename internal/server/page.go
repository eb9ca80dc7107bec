package server

import (
	"html/template"
	"net/http"
)

// Dashboard serves the single-page UI. All data flows through the JSON API;
// the page itself is static.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = dashboardTmpl.Execute(w, nil)
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Complaints Dashboard</title>
<style>
:root {
  --bg: #f5f7fa; --fg: #1e293b; --card-bg: #fff; --border: #cbd5e1;
  --table-alt: #f1f5f9; --muted: #64748b; --accent: #2563eb;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1200px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.panel { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
.panel h2 { font-size: 1rem; margin-bottom: .75rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.filters { display: flex; flex-wrap: wrap; gap: .75rem; align-items: center; }
.filters label { font-size: .8125rem; color: var(--muted); }
.filters input, .filters select, button { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .8125rem; }
button { cursor: pointer; }
button.primary { background: var(--accent); color: #fff; border-color: var(--accent); }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; }
@media (max-width: 800px) { .charts { grid-template-columns: 1fr; } }
.charts img { width: 100%; border: 1px solid var(--border); border-radius: 8px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
tr:nth-child(even) { background: var(--table-alt); }
details { margin-bottom: .5rem; }
details summary { cursor: pointer; font-size: .875rem; padding: .25rem 0; }
.hidden { display: none; }
#categories label { display: inline-flex; gap: .25rem; align-items: center; margin-right: .75rem; font-size: .8125rem; color: var(--fg); }
</style>
</head>
<body>
<header>
  <h1>📊 Complaints Dashboard</h1>
  <p>Upload the ticketing export, filter by date and category, export the breakdown.</p>
</header>

<div class="panel">
  <h2>Upload</h2>
  <form id="upload-form">
    <input type="file" name="workbook" accept=".xlsx" required>
    <button class="primary" type="submit">Upload</button>
    <span id="upload-status"></span>
  </form>
</div>

<div id="dash" class="hidden">
  <div class="panel filters">
    <label>From <input type="date" id="from"></label>
    <label>To <input type="date" id="to"></label>
    <span id="categories"></span>
    <button class="primary" id="apply">Apply</button>
    <button id="export">📥 Export Excel</button>
  </div>

  <div class="cards">
    <div class="card"><div class="value" id="total">0</div><div class="label">Total complaints</div></div>
    <div class="card"><div class="value" id="cat-count">0</div><div class="label">Categories</div></div>
    <div class="card"><div class="value" id="rep-count">0</div><div class="label">Reporters</div></div>
  </div>

  <div class="panel">
    <h2>Category Reporting Breakdown</h2>
    <table>
      <thead><tr><th>Category</th><th>Complaints</th><th>Percentage</th><th>Reporters (Count)</th></tr></thead>
      <tbody id="summary-body"></tbody>
    </table>
  </div>

  <div class="panel charts">
    <div><h2>Percentage by Category</h2><img id="bar" alt="bar chart"></div>
    <div><h2>Category Distribution</h2><img id="pie" alt="pie chart"></div>
  </div>

  <div class="panel">
    <h2>Top Reporters per Category</h2>
    <div id="reporters"></div>
  </div>

  <div class="panel">
    <h2>All Complaints</h2>
    <table>
      <thead><tr><th>Date</th><th>Category</th><th>Product</th><th>Reporter</th><th>Facility</th></tr></thead>
      <tbody id="detail-body"></tbody>
    </table>
  </div>
</div>

<script>
let sessionId = null;

const esc = s => { const d = document.createElement('div'); d.textContent = s ?? ''; return d.innerHTML; };

document.getElementById('upload-form').addEventListener('submit', async e => {
  e.preventDefault();
  const status = document.getElementById('upload-status');
  status.textContent = 'Uploading…';
  const body = new FormData(e.target);
  const resp = await fetch('/api/upload', { method: 'POST', body });
  if (!resp.ok) { status.textContent = await resp.text(); return; }
  const info = await resp.json();
  sessionId = info.session_id;
  status.textContent = info.rows + ' rows loaded' + (info.dropped ? ' (' + info.dropped + ' dropped)' : '');
  document.getElementById('from').value = info.min_date;
  document.getElementById('to').value = info.max_date;
  document.getElementById('categories').innerHTML = info.categories.map(c =>
    '<label><input type="checkbox" value="' + esc(c) + '" checked>' + esc(c) + '</label>').join('');
  document.getElementById('dash').classList.remove('hidden');
  refresh();
});

function filterQuery() {
  const cats = [...document.querySelectorAll('#categories input:checked')].map(i => i.value);
  const all = document.querySelectorAll('#categories input').length === cats.length;
  const q = new URLSearchParams({
    session: sessionId,
    from: document.getElementById('from').value,
    to: document.getElementById('to').value,
  });
  if (!all) q.set('categories', cats.join(','));
  return q.toString();
}

async function refresh() {
  const q = filterQuery();
  const resp = await fetch('/api/report?' + q);
  if (!resp.ok) { alert(await resp.text()); return; }
  const rep = await resp.json();

  document.getElementById('total').textContent = rep.summary.total;
  document.getElementById('cat-count').textContent = rep.summary.categories;
  document.getElementById('rep-count').textContent = rep.summary.reporters;

  document.getElementById('summary-body').innerHTML = (rep.stats || []).map(s =>
    '<tr><td>' + esc(s.category) + '</td><td>' + s.count + '</td><td>' +
    s.percentage.toFixed(1) + '%</td><td>' + esc(s.top_reporters) + '</td></tr>').join('');

  document.getElementById('reporters').innerHTML = (rep.stats || []).map(s =>
    '<details><summary>' + esc(s.category) + ' (' + s.count + ' reports)</summary>' +
    '<table><thead><tr><th>Reporter</th><th>Reports</th><th>% of Category</th></tr></thead><tbody>' +
    s.reporters.map(r => '<tr><td>' + esc(r.reporter) + '</td><td>' + r.count +
      '</td><td>' + r.percent.toFixed(1) + '%</td></tr>').join('') +
    '</tbody></table></details>').join('');

  document.getElementById('detail-body').innerHTML = (rep.detail || []).map(d =>
    '<tr><td>' + esc(d.date) + '</td><td>' + esc(d.category) + '</td><td>' + esc(d.product) +
    '</td><td>' + esc(d.reporter) + '</td><td>' + esc(d.facility) + '</td></tr>').join('');

  document.getElementById('bar').src = '/charts/bar.png?' + q + '&t=' + Date.now();
  document.getElementById('pie').src = '/charts/pie.png?' + q + '&t=' + Date.now();
}

document.getElementById('apply').addEventListener('click', refresh);
document.getElementById('export').addEventListener('click', () => {
  window.location = '/api/export?' + filterQuery();
});
</script>
</body>
</html>
`

package generator

// defaultStylesheet is written as css/main.css when the input assets carry no
// stylesheet of their own. It covers the structural pieces the markup depends
// on: the sidebar disclosure toggles, the CSS-only appearance switch, and the
// dropdown menus on tutorial pages.
const defaultStylesheet = `:root {
  --bg: #ffffff;
  --fg: #1d1d1f;
  --accent: #0066cc;
  --muted: #6e6e73;
  --border: #d2d2d7;
  --code-bg: #f5f5f7;
}

html:has(#appearance-dark:checked) {
  --bg: #1d1d1f;
  --fg: #f5f5f7;
  --accent: #2997ff;
  --muted: #86868b;
  --border: #424245;
  --code-bg: #2d2d2f;
}

@media (prefers-color-scheme: dark) {
  html:has(#appearance-auto:checked) {
    --bg: #1d1d1f;
    --fg: #f5f5f7;
    --accent: #2997ff;
    --muted: #86868b;
    --border: #424245;
    --code-bg: #2d2d2f;
  }
}

body {
  margin: 0;
  background: var(--bg);
  color: var(--fg);
  font: 16px/1.5 -apple-system, "Segoe UI", Roboto, sans-serif;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

.header-bar {
  display: flex;
  align-items: center;
  gap: 1rem;
  padding: 0.6rem 1.2rem;
  border-bottom: 1px solid var(--border);
}

.layout { display: flex; }

.sidebar {
  flex: 0 0 260px;
  padding: 1rem;
  border-right: 1px solid var(--border);
  overflow-y: auto;
}

.sidebar ul { list-style: none; margin: 0; padding-left: 0.9rem; }

.nav-toggle { display: none; }
.nav-toggle + label { cursor: pointer; display: block; font-weight: 600; }
.nav-toggle + label::before { content: "\25B8\00A0"; }
.nav-toggle:checked + label::before { content: "\25BE\00A0"; }
.nav-toggle + label + ul,
.nav-toggle + label + section { display: none; }
.nav-toggle:checked + label + ul,
.nav-toggle:checked + label + section { display: block; }

.nav-link-current { font-weight: 700; }
.link-inactive { color: var(--muted); }

.nav-badge, .nav-badge-generic {
  display: inline-block;
  width: 1.1em;
  margin-right: 0.35em;
  text-align: center;
  font-size: 0.75em;
  border: 1px solid var(--border);
  border-radius: 3px;
}

.content { flex: 1; max-width: 52rem; padding: 1.5rem 2rem; }

.breadcrumbs ol { list-style: none; display: flex; gap: 0.4rem; padding: 0; }
.breadcrumbs li + li::before { content: "\203A"; margin-right: 0.4rem; color: var(--muted); }

.role-heading { text-transform: uppercase; font-size: 0.8rem; color: var(--muted); }
.abstract { font-size: 1.15rem; color: var(--muted); }

pre, code { background: var(--code-bg); border-radius: 4px; }
pre { padding: 0.8rem; overflow-x: auto; }
.code-listing pre, .declaration pre { margin: 0; }

.aside { border-left: 4px solid var(--accent); padding: 0.4rem 1rem; margin: 1rem 0; }
.aside-warning, .aside-important { border-color: #ff9f0a; }
.aside-title { font-weight: 700; }

table { border-collapse: collapse; }
th, td { border: 1px solid var(--border); padding: 0.4rem 0.8rem; }

.dropdown summary { cursor: pointer; }
.dropdown-item-current { font-weight: 700; }

.hero { padding: 2rem 0; border-bottom: 1px solid var(--border); }
.hero-chapter { color: var(--muted); text-transform: uppercase; font-size: 0.8rem; }
.hero-time { color: var(--muted); }

.tutorial-cards { list-style: none; padding: 0; }

.footer {
  display: flex;
  justify-content: space-between;
  padding: 1rem 2rem;
  border-top: 1px solid var(--border);
  color: var(--muted);
}

.appearance-toggle input { display: none; }
.appearance-toggle label { cursor: pointer; padding: 0 0.3rem; }
.appearance-toggle input:checked + label { color: var(--accent); font-weight: 700; }
`

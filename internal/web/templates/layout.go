package templates

const pageHead = `<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Wave Divider</title>
<style>
body{margin:0;font-family:system-ui,sans-serif;background:#0d1117;color:#c9d1d9}
.editor{display:grid;grid-template-columns:320px 1fr;gap:24px;padding:24px}
.controls label{display:block;margin-bottom:12px}
.controls input[type=range],.controls select{width:100%}
.flags button,.modes button{margin-right:6px}
button[aria-pressed=true]{background:#238636;color:#fff}
.preset-grid{display:grid;grid-template-columns:repeat(2,1fr);gap:8px}
.preset{background:none;border:1px solid #30363d;padding:4px;cursor:pointer;color:inherit}
.preset svg{display:block;width:100%;height:auto}
.preview{grid-column:2;border:1px solid #30363d;min-height:80px}
.preview svg{display:block;width:100%;height:auto}
.status{grid-column:2;color:#f85149;min-height:1em}
.export{grid-column:2}
.export textarea{width:100%;height:72px;font-family:monospace}
</style>
</head>
`

const pageScript = `<script>
(function(){
  function api(method, path, body){
    var opts = {method: method, headers: {}};
    if (body !== undefined) {
      opts.headers['Content-Type'] = 'application/json';
      opts.body = JSON.stringify(body);
    }
    return fetch(path, opts).then(function(r){ return r.json(); });
  }

  function refreshExport(mode){
    var q = mode ? '?mode=' + encodeURIComponent(mode) : '';
    api('GET', '/api/export' + q).then(function(res){
      document.getElementById('export-code').value = res.code;
      document.querySelectorAll('[data-mode]').forEach(function(b){
        b.setAttribute('aria-pressed', String(b.dataset.mode === res.mode));
      });
    });
  }

  function refreshPreview(){
    fetch('/api/preview').then(function(r){
      if (r.status !== 200) { return; }
      return r.text().then(function(svg){
        document.getElementById('preview').innerHTML = svg;
        document.getElementById('status').textContent = '';
        refreshExport();
      });
    });
  }

  function showState(state){
    var p = state.params;
    document.querySelectorAll('[data-field]').forEach(function(el){
      var v = p[el.dataset.field];
      if (v === undefined || el === document.activeElement) { return; }
      el.value = el.type === 'color' ? '#' + v : v;
    });
    Object.keys(state.flags).forEach(function(name){
      var b = document.querySelector('[data-flag="' + name + '"]');
      if (b) { b.setAttribute('aria-pressed', String(state.flags[name])); }
    });
  }

  document.querySelectorAll('[data-field]').forEach(function(el){
    el.addEventListener('input', function(){
      var body = {};
      body[el.dataset.field] = el.type === 'color' ? el.value.replace('#', '') : el.value;
      api('PATCH', '/api/params', body);
    });
  });

  document.querySelectorAll('[data-flag]').forEach(function(b){
    b.addEventListener('click', function(){
      api('POST', '/api/flags/' + b.dataset.flag + '/toggle');
    });
  });

  document.querySelectorAll('[data-preset]').forEach(function(b){
    b.addEventListener('click', function(){
      api('POST', '/api/presets/' + b.dataset.preset + '/apply');
    });
  });

  document.querySelectorAll('[data-mode]').forEach(function(b){
    b.addEventListener('click', function(){ refreshExport(b.dataset.mode); });
  });

  document.getElementById('copy').addEventListener('click', function(){
    var code = document.getElementById('export-code');
    if (navigator.clipboard) { navigator.clipboard.writeText(code.value); }
  });

  var events = new EventSource('/api/events');
  ['state', 'params', 'preset'].forEach(function(kind){
    events.addEventListener(kind, function(e){ showState(JSON.parse(e.data).state); });
  });
  events.addEventListener('render', refreshPreview);
  events.addEventListener('render_failed', function(e){
    document.getElementById('status').textContent = 'Render failed: ' + JSON.parse(e.data).error;
  });
})();
</script>
`

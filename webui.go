package main

// webUIHTML is the embedded web interface HTML
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Take-Home Pay Calculator</title>
    <style>
        :root {
            --primary: #2563eb;
            --bg: #f1f5f9;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
            --danger: #dc2626;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            padding: 24px;
        }
        .card {
            background: var(--card-bg);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 20px;
            max-width: 760px;
            margin: 0 auto 16px;
        }
        h1 { font-size: 22px; margin-bottom: 16px; }
        label { display: block; font-size: 13px; color: var(--text-muted); margin-bottom: 4px; }
        .row { display: flex; gap: 12px; flex-wrap: wrap; }
        .field { flex: 1; min-width: 150px; margin-bottom: 12px; }
        input, select { width: 100%; padding: 8px; border: 1px solid var(--border); border-radius: 6px; font-size: 15px; }
        table { width: 100%; border-collapse: collapse; margin-top: 8px; }
        th, td { padding: 6px 8px; border-bottom: 1px solid var(--border); text-align: right; font-size: 14px; }
        th:first-child, td:first-child { text-align: left; }
        .totals td { font-weight: 600; }
        .error { color: var(--danger); margin-top: 8px; }
        button { background: var(--primary); color: white; border: 0; border-radius: 6px; padding: 8px 14px; cursor: pointer; }
        .muted { color: var(--text-muted); font-size: 12px; margin-top: 8px; }
    </style>
</head>
<body>
    <div class="card">
        <h1>UK Income Tax &amp; Take-Home Pay</h1>
        <div class="row">
            <div class="field">
                <label for="amount">Gross pay (&pound;)</label>
                <input id="amount" type="number" min="0" step="0.01" value="30000">
            </div>
            <div class="field">
                <label for="period">Per</label>
                <select id="period">
                    <option value="annual">Year</option>
                    <option value="monthly">Month</option>
                    <option value="weekly">Week</option>
                    <option value="daily">Day</option>
                    <option value="hourly">Hour</option>
                </select>
            </div>
            <div class="field">
                <label for="jurisdiction">Where you pay tax</label>
                <select id="jurisdiction"></select>
            </div>
            <div class="field">
                <label for="hours">Hours per week</label>
                <input id="hours" type="number" min="1" step="0.5" value="37.5">
            </div>
        </div>
        <div id="error" class="error"></div>
    </div>

    <div class="card">
        <table id="summary"></table>
    </div>

    <div class="card">
        <table id="bands"></table>
    </div>

    <div class="card">
        <table id="periods"></table>
        <p class="muted">Income tax only. National Insurance, student loans and pension contributions are not included.</p>
        <p style="margin-top:12px">
            <button id="csv">Save CSV</button>
            <button id="pdf">Download PDF</button>
        </p>
        <div id="exportMsg" class="muted"></div>
    </div>

<script>
const gbp = new Intl.NumberFormat('en-GB', { style: 'currency', currency: 'GBP' });
const pct = v => (v * 100).toFixed(1) + '%';
let timer = null;

function request() {
    return {
        amount: parseFloat(document.getElementById('amount').value) || 0,
        period: document.getElementById('period').value,
        jurisdiction: document.getElementById('jurisdiction').value,
        work: { hours_per_week: parseFloat(document.getElementById('hours').value) || 0 }
    };
}

function row(cells, cls) {
    return '<tr' + (cls ? ' class="' + cls + '"' : '') + '>' + cells.map(c => '<td>' + c + '</td>').join('') + '</tr>';
}

function render(th) {
    const r = th.result;
    document.getElementById('summary').innerHTML =
        row(['Gross income', gbp.format(th.gross)]) +
        row(['Personal allowance', gbp.format(r.personal_allowance)]) +
        row(['Taxable income', gbp.format(r.taxable_income)]) +
        row(['Income tax', gbp.format(r.total_tax)]) +
        row(['Take-home pay', gbp.format(th.net)], 'totals') +
        row(['Effective rate', pct(th.effective_rate)]) +
        row(['Marginal rate', pct(th.marginal_rate)]);

    let bands = '<tr><th>Band</th><th>Rate</th><th>Income in band</th><th>Tax</th></tr>';
    r.breakdown.filter(b => b.amount > 0).forEach(b => {
        bands += row([b.name, pct(b.rate), gbp.format(b.amount), gbp.format(b.tax)]);
    });
    bands += row(['Total', '', gbp.format(r.taxable_income), gbp.format(r.total_tax)], 'totals');
    document.getElementById('bands').innerHTML = bands;

    let periods = '<tr><th>Period</th><th>Gross</th><th>Tax</th><th>Net</th></tr>';
    th.periods.forEach(p => {
        periods += row([p.period, gbp.format(p.gross), gbp.format(p.tax), gbp.format(p.net)]);
    });
    document.getElementById('periods').innerHTML = periods;
}

async function recalculate() {
    const res = await fetch('/api/calculate', { method: 'POST', body: JSON.stringify(request()) });
    const data = await res.json();
    document.getElementById('error').textContent = data.success ? '' : data.error;
    if (data.success) render(data.take_home);
}

function schedule() {
    clearTimeout(timer);
    timer = setTimeout(recalculate, 200);
}

async function init() {
    const res = await fetch('/api/jurisdictions');
    const list = await res.json();
    const sel = document.getElementById('jurisdiction');
    list.forEach(j => {
        const opt = document.createElement('option');
        opt.value = j.id;
        opt.textContent = j.name;
        sel.appendChild(opt);
    });
    ['amount', 'period', 'jurisdiction', 'hours'].forEach(id => {
        document.getElementById(id).addEventListener('input', schedule);
    });
    document.getElementById('csv').addEventListener('click', async () => {
        const res = await fetch('/api/export-csv', { method: 'POST', body: JSON.stringify(request()) });
        const data = await res.json();
        document.getElementById('exportMsg').textContent = data.message;
    });
    document.getElementById('pdf').addEventListener('click', async () => {
        const res = await fetch('/api/download-pdf', { method: 'POST', body: JSON.stringify(request()) });
        const blob = await res.blob();
        const a = document.createElement('a');
        a.href = URL.createObjectURL(blob);
        a.download = 'income-tax.pdf';
        a.click();
    });
    recalculate();
}

init();
</script>
</body>
</html>
`
